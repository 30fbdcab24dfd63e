package domain

// Identity is the user record held for a session and mirrored to the
// remembered-identity slot
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
}

// NameOr returns the display name, or fallback when there is no identity
func (i *Identity) NameOr(fallback string) string {
	if i == nil || i.DisplayName == "" {
		return fallback
	}
	return i.DisplayName
}
