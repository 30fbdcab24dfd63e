package testutil

import (
	"campusportal/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestIdentity creates a test identity
func NewTestIdentity(id, name, email string) domain.Identity {
	return domain.Identity{
		ID:          id,
		DisplayName: name,
		Email:       email,
	}
}
