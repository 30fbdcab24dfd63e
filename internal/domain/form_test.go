package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormDraft_Fill(t *testing.T) {
	draft := NewFormDraft(FormLogin)
	assert.Equal(t, FieldStudentID, draft.Field())

	draft.Fill("  S100 ")
	assert.Equal(t, FieldPassword, draft.Field())

	draft.Fill("-")
	assert.Equal(t, FieldRememberMe, draft.Field())
	assert.False(t, draft.Done())

	draft.Fill("yes")
	assert.True(t, draft.Done())
	assert.Equal(t, "", draft.Field())

	// filling a completed draft is ignored
	draft.Fill("extra")

	ev := draft.Submit()
	assert.Equal(t, FormLogin, ev.Form)
	assert.Equal(t, map[string]string{
		FieldStudentID:  "S100",
		FieldPassword:   "",
		FieldRememberMe: "yes",
	}, ev.Fields)
}

func TestFormName_Fields(t *testing.T) {
	tests := []struct {
		form     FormName
		expected []string
	}{
		{FormLogin, []string{"studentId", "password", "rememberMe"}},
		{FormSignup, []string{"fullName", "email", "newStudentId", "newPassword", "confirmPassword"}},
		{FormReminder, []string{"reminderTitle", "reminderDesc", "reminderDate"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.form), func(t *testing.T) {
			assert.True(t, tt.form.Valid())
			assert.Equal(t, tt.expected, tt.form.Fields())
		})
	}

	assert.False(t, FormName("survey").Valid())
}

func TestSecretField(t *testing.T) {
	assert.True(t, SecretField(FieldPassword))
	assert.True(t, SecretField(FieldNewPassword))
	assert.True(t, SecretField(FieldConfirmPassword))
	assert.False(t, SecretField(FieldStudentID))
}

func TestParseDueAt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		ok       bool
	}{
		{
			name:     "date and time",
			input:    "2024-10-20 17:00",
			expected: time.Date(2024, 10, 20, 17, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "datetime-local",
			input:    "2024-10-20T09:30",
			expected: time.Date(2024, 10, 20, 9, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "date only",
			input:    "2024-10-20",
			expected: time.Date(2024, 10, 20, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:  "garbage",
			input: "tomorrow",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, ok := ParseDueAt(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.expected.Equal(due))
			}
		})
	}
}

func TestParseClick(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		data     string
		expected ClickEvent
	}{
		{
			name:     "menu item",
			target:   "menu",
			data:     "exams",
			expected: ClickEvent{Target: TargetMenuItem, Page: "exams"},
		},
		{
			name:     "quick query",
			target:   "query",
			data:     "events",
			expected: ClickEvent{Target: TargetQuickQuery, Query: "events"},
		},
		{
			name:     "form",
			target:   "form",
			data:     "signup",
			expected: ClickEvent{Target: TargetForm, Form: FormSignup},
		},
		{
			name:     "logout ignores data",
			target:   "logout",
			data:     "x",
			expected: ClickEvent{Target: TargetLogout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := ParseClick(tt.target, tt.data)
			assert.Equal(t, tt.expected, ev)
			if tt.expected.Target != TargetLogout {
				assert.Equal(t, tt.data, ev.Data())
			}
		})
	}
}
