package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSubView(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      SubView
		expectedError bool
	}{
		{
			name:     "dashboard",
			input:    "dashboard",
			expected: SubViewDashboard,
		},
		{
			name:     "timetable",
			input:    "timetable",
			expected: SubViewTimetable,
		},
		{
			name:     "reminders",
			input:    "reminders",
			expected: SubViewReminders,
		},
		{
			name:          "unknown page",
			input:         "bogus",
			expectedError: true,
		},
		{
			name:          "case sensitive",
			input:         "Dashboard",
			expectedError: true,
		},
		{
			name:          "empty",
			input:         "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := ParseSubView(tt.input)

			if tt.expectedError {
				var unknown *UnknownViewError
				assert.True(t, errors.As(err, &unknown))
				assert.Equal(t, tt.input, unknown.Name)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, view)
		})
	}
}

func TestSubView_RoundTrip(t *testing.T) {
	views := AllSubViews()
	assert.Len(t, views, SubViewCount)

	for _, v := range views {
		parsed, err := ParseSubView(v.String())
		assert.NoError(t, err)
		assert.Equal(t, v, parsed)
		assert.NotEmpty(t, v.Title())
	}
}

func TestSubView_Invalid(t *testing.T) {
	v := SubView(SubViewCount)
	assert.False(t, v.Valid())
	assert.Equal(t, "unknown", v.String())
	assert.Empty(t, v.Title())
	assert.False(t, SubView(-1).Valid())
}

func TestViewState_Authenticated(t *testing.T) {
	assert.False(t, LoginState().Authenticated())
	assert.True(t, ViewState{Page: PagePortal}.Authenticated())
}

func TestIdentity_NameOr(t *testing.T) {
	var missing *Identity
	assert.Equal(t, "Student", missing.NameOr("Student"))
	assert.Equal(t, "Student", (&Identity{ID: "S1"}).NameOr("Student"))
	assert.Equal(t, "Ada", (&Identity{DisplayName: "Ada"}).NameOr("Student"))
}
