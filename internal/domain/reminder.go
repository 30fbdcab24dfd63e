package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reminder is a reminder draft entered on the reminders page.
// It is confirmed but never stored or scheduled.
type Reminder struct {
	ID          uuid.UUID
	Title       string
	Description string
	DueAt       time.Time
}

// reminderLayouts are the accepted due date formats
var reminderLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDueAt parses a reminder due date
func ParseDueAt(value string) (time.Time, bool) {
	for _, layout := range reminderLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NewReminder creates a reminder with a fresh ID
func NewReminder(title, description string, dueAt time.Time) Reminder {
	return Reminder{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		DueAt:       dueAt,
	}
}
