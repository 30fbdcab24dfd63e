package handler

import (
	"errors"
	"testing"
	"time"

	"campusportal/internal/domain"
	"campusportal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func newTestPresenter(api *testutil.FakeMessenger, scheduler *testutil.ManualScheduler) *telegramPresenter {
	return newTelegramPresenter(api, &tele.Chat{ID: chatID}, scheduler, 3*time.Second, testutil.NewTestLogger())
}

func TestPresenter_Show(t *testing.T) {
	tests := []struct {
		name         string
		editErr      error
		expectedSent int
	}{
		{
			name:         "second screen edits in place",
			expectedSent: 1,
		},
		{
			name:         "unchanged content is ignored",
			editErr:      errors.New("telegram: Bad Request: message is not modified (400)"),
			expectedSent: 1,
		},
		{
			name:         "failed edit sends a new message",
			editErr:      errors.New("telegram: Bad Request: message to edit not found (400)"),
			expectedSent: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &testutil.FakeMessenger{}
			p := newTestPresenter(api, testutil.NewManualScheduler(time.Now()))

			p.Show(domain.Screen{Text: "<b>first</b>"})
			api.EditErr = tt.editErr
			p.Show(domain.Screen{Text: "<b>second</b>"})

			assert.Len(t, api.Sent, tt.expectedSent)
			assert.Contains(t, api.Sent[0].Options, tele.ModeHTML)
			if tt.editErr == nil {
				require.Len(t, api.Edited, 1)
				assert.Equal(t, "<b>second</b>", api.Edited[0].Text)
			}
		})
	}
}

func TestPresenter_Detach(t *testing.T) {
	api := &testutil.FakeMessenger{}
	p := newTestPresenter(api, testutil.NewManualScheduler(time.Now()))

	p.Show(domain.Screen{Text: "one"})
	p.Detach()
	p.Show(domain.Screen{Text: "two"})

	assert.Equal(t, []string{"one", "two"}, api.SentTexts())
	assert.Empty(t, api.Edited)
}

func TestPresenter_Notify(t *testing.T) {
	api := &testutil.FakeMessenger{}
	scheduler := testutil.NewManualScheduler(time.Now())
	p := newTestPresenter(api, scheduler)

	p.Notify(domain.Notice{Kind: domain.NoticeError, Text: "Passwords do not match"})
	p.Notify(domain.Notice{Kind: domain.NoticeInfo, Text: "Reminder added successfully!"})

	assert.Equal(t, []string{"⚠️ Passwords do not match", "✅ Reminder added successfully!"}, api.SentTexts())

	scheduler.Advance(3*time.Second - time.Millisecond)
	assert.Empty(t, api.Deleted)

	scheduler.Advance(time.Millisecond)
	assert.ElementsMatch(t, []int{1, 2}, api.Deleted)
}

func TestIsNotModified(t *testing.T) {
	assert.False(t, isNotModified(nil))
	assert.True(t, isNotModified(errors.New("telegram: message is not modified")))
	assert.False(t, isNotModified(errors.New("telegram: chat not found")))
}
