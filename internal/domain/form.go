package domain

import "strings"

// FormName identifies a submitted form
type FormName string

const (
	FormLogin    FormName = "login"
	FormSignup   FormName = "signup"
	FormReminder FormName = "reminder"
)

// Form field names
const (
	FieldStudentID       = "studentId"
	FieldPassword        = "password"
	FieldRememberMe      = "rememberMe"
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldNewStudentID    = "newStudentId"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
	FieldReminderTitle   = "reminderTitle"
	FieldReminderDesc    = "reminderDesc"
	FieldReminderDate    = "reminderDate"
)

var formFields = map[FormName][]string{
	FormLogin:    {FieldStudentID, FieldPassword, FieldRememberMe},
	FormSignup:   {FieldFullName, FieldEmail, FieldNewStudentID, FieldNewPassword, FieldConfirmPassword},
	FormReminder: {FieldReminderTitle, FieldReminderDesc, FieldReminderDate},
}

// Fields returns the form's field names in entry order
func (f FormName) Fields() []string {
	return formFields[f]
}

// Valid reports whether f is a known form
func (f FormName) Valid() bool {
	_, ok := formFields[f]
	return ok
}

// SecretField reports whether a field holds a password
func SecretField(field string) bool {
	switch field {
	case FieldPassword, FieldNewPassword, FieldConfirmPassword:
		return true
	}
	return false
}

// FormDraft collects form fields one message at a time
type FormDraft struct {
	Form   FormName
	Values map[string]string
	Step   int
}

// NewFormDraft starts an empty draft for form
func NewFormDraft(form FormName) *FormDraft {
	return &FormDraft{Form: form, Values: make(map[string]string)}
}

// Field returns the field awaiting input, or "" when the draft is complete
func (d *FormDraft) Field() string {
	fields := d.Form.Fields()
	if d.Step >= len(fields) {
		return ""
	}
	return fields[d.Step]
}

// Fill stores value for the current field and advances.
// A lone "-" leaves the field blank.
func (d *FormDraft) Fill(value string) {
	field := d.Field()
	if field == "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "-" {
		value = ""
	}
	d.Values[field] = value
	d.Step++
}

// Done reports whether every field has been collected
func (d *FormDraft) Done() bool {
	return d.Field() == ""
}

// Submit converts the draft to a submit event
func (d *FormDraft) Submit() SubmitEvent {
	fields := make(map[string]string, len(d.Values))
	for k, v := range d.Values {
		fields[k] = v
	}
	return SubmitEvent{Form: d.Form, Fields: fields}
}

// Clone returns an independent copy of the draft
func (d *FormDraft) Clone() *FormDraft {
	values := make(map[string]string, len(d.Values))
	for k, v := range d.Values {
		values[k] = v
	}
	return &FormDraft{Form: d.Form, Values: values, Step: d.Step}
}
