package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"campusportal/internal/content"
	"campusportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	provider, err := content.New()
	require.NoError(t, err)
	return NewRenderer(provider)
}

func portalState(v domain.SubView) domain.ViewState {
	return domain.ViewState{Page: domain.PagePortal, SubView: v}
}

func TestRenderer_BlocksComplete(t *testing.T) {
	for _, v := range domain.AllSubViews() {
		assert.NotNil(t, blocks[v], "no block for %s", v)
	}
}

func TestRenderer_SubViews(t *testing.T) {
	renderer := newTestRenderer(t)
	identity := &domain.Identity{ID: "S100", DisplayName: "John Doe"}

	tests := []struct {
		view     domain.SubView
		contains []string
	}{
		{domain.SubViewDashboard, []string{"Welcome, John Doe!", "Today's Classes", "Physics Lab"}},
		{domain.SubViewChatbot, []string{"Campus Assistant"}},
		{domain.SubViewTimetable, []string{"Fall Semester 2024", "Wednesday", "Biology Lab"}},
		{domain.SubViewAttendance, []string{"Overall Attendance: 95%", "Mathematics</b>: 94%", "Aug █████████░ 92%"}},
		{domain.SubViewExams, []string{"Mathematics - Mid Term", "Seat: B-25", "Assignment 1"}},
		{domain.SubViewResources, []string{"Physics Lab Manual", "Calculus Fundamentals"}},
		{domain.SubViewReminders, []string{"Pay Semester Fees", "Library Maintenance"}},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			screen, err := renderer.Render(portalState(tt.view), identity, Transcript{})
			require.NoError(t, err)

			assert.Equal(t, domain.PagePortal, screen.Page)
			assert.Equal(t, tt.view, screen.SubView)
			assert.False(t, screen.Loading)
			assert.Contains(t, screen.Text, tt.view.Title())
			for _, s := range tt.contains {
				assert.Contains(t, screen.Text, s)
			}

			// deterministic output
			again, err := renderer.Render(portalState(tt.view), identity, Transcript{})
			require.NoError(t, err)
			assert.Equal(t, screen, again)
		})
	}
}

func TestRenderer_DashboardDefaultName(t *testing.T) {
	renderer := newTestRenderer(t)

	screen, err := renderer.Render(portalState(domain.SubViewDashboard), nil, Transcript{})
	require.NoError(t, err)
	assert.Contains(t, screen.Text, "Welcome, Student!")
}

func TestRenderer_EscapesName(t *testing.T) {
	renderer := newTestRenderer(t)
	identity := &domain.Identity{DisplayName: "<b>Eve</b>"}

	screen, err := renderer.Render(portalState(domain.SubViewDashboard), identity, Transcript{})
	require.NoError(t, err)
	assert.Contains(t, screen.Text, "&lt;b&gt;Eve&lt;/b&gt;")
	assert.NotContains(t, screen.Text, "<b>Eve</b>")
}

func TestRenderer_Loading(t *testing.T) {
	renderer := newTestRenderer(t)
	state := portalState(domain.SubViewExams)
	state.Loading = true

	screen, err := renderer.Render(state, nil, Transcript{})
	require.NoError(t, err)
	assert.True(t, screen.Loading)
	assert.Contains(t, screen.Text, "Loading")
	assert.NotContains(t, screen.Text, "Seat: B-25")
}

func TestRenderer_Login(t *testing.T) {
	renderer := newTestRenderer(t)

	screen, err := renderer.Render(domain.LoginState(), nil, Transcript{})
	require.NoError(t, err)
	assert.Equal(t, domain.PageLogin, screen.Page)
	assert.Contains(t, screen.Text, "Sign in with your student ID")
	require.Len(t, screen.Actions, 1)
	assert.Equal(t, domain.ClickEvent{Target: domain.TargetForm, Form: domain.FormLogin}, screen.Actions[0][0].Click)
	assert.Equal(t, domain.TargetShowSignup, screen.Actions[0][1].Click.Target)

	signup := domain.LoginState()
	signup.AuthMode = domain.AuthModeSignup
	screen, err = renderer.Render(signup, nil, Transcript{})
	require.NoError(t, err)
	assert.Contains(t, screen.Text, "Create your account")
	assert.Equal(t, domain.ClickEvent{Target: domain.TargetForm, Form: domain.FormSignup}, screen.Actions[0][0].Click)
	assert.Equal(t, domain.TargetShowLogin, screen.Actions[0][1].Click.Target)
}

func TestRenderer_UnknownView(t *testing.T) {
	renderer := newTestRenderer(t)

	_, err := renderer.Render(portalState(domain.SubView(domain.SubViewCount)), nil, Transcript{})

	var unknown *domain.UnknownViewError
	assert.True(t, errors.As(err, &unknown))
}

func TestRenderer_Chat(t *testing.T) {
	renderer := newTestRenderer(t)
	at := time.Date(2024, 10, 1, 9, 5, 0, 0, time.UTC)

	chat := Transcript{
		Messages: []domain.ChatMessage{
			domain.NewChatMessage(chatGreeting, domain.OriginAssistant, at),
			domain.NewChatMessage("a < b", domain.OriginUser, at),
		},
		Typing: true,
	}

	screen, err := renderer.Render(portalState(domain.SubViewChatbot), nil, chat)
	require.NoError(t, err)
	assert.Contains(t, screen.Text, "🤖 "+chatGreeting)
	assert.Contains(t, screen.Text, "🧑 a &lt; b")
	assert.Contains(t, screen.Text, "09:05")
	assert.Contains(t, screen.Text, "typing…")

	var queries []string
	for _, row := range screen.Actions {
		for _, a := range row {
			if a.Click.Target == domain.TargetQuickQuery {
				queries = append(queries, a.Click.Query)
			}
		}
	}
	assert.Equal(t, []string{"timetable", "events", "exams", "attendance"}, queries)
}

func TestRenderer_PortalActions(t *testing.T) {
	renderer := newTestRenderer(t)

	screen, err := renderer.Render(portalState(domain.SubViewResources), nil, Transcript{})
	require.NoError(t, err)

	var pages []string
	var logout bool
	for _, row := range screen.Actions {
		assert.LessOrEqual(t, len(row), 2)
		for _, a := range row {
			switch a.Click.Target {
			case domain.TargetMenuItem:
				pages = append(pages, a.Click.Page)
				if a.Click.Page == "resources" {
					assert.Equal(t, "▸ "+domain.SubViewResources.Title(), a.Label)
				}
			case domain.TargetLogout:
				logout = true
			}
		}
	}

	assert.Equal(t, []string{"dashboard", "chatbot", "timetable", "attendance", "exams", "resources", "reminders"}, pages)
	assert.True(t, logout)
}

func TestRenderer_ReminderAction(t *testing.T) {
	renderer := newTestRenderer(t)

	screen, err := renderer.Render(portalState(domain.SubViewReminders), nil, Transcript{})
	require.NoError(t, err)
	assert.Equal(t, domain.ClickEvent{Target: domain.TargetForm, Form: domain.FormReminder}, screen.Actions[0][0].Click)
}

func TestRenderer_LongChatFitsTelegram(t *testing.T) {
	renderer := newTestRenderer(t)
	responder := NewResponder(DefaultTopics())
	at := time.Date(2024, 10, 1, 9, 5, 0, 0, time.UTC)

	messages := []domain.ChatMessage{domain.NewChatMessage(chatGreeting, domain.OriginAssistant, at)}
	for i := 0; i < 20; i++ {
		messages = append(messages,
			domain.NewChatMessage("timetable please", domain.OriginUser, at),
			domain.NewChatMessage(responder.Respond("timetable please"), domain.OriginAssistant, at),
		)
	}
	before := append([]domain.ChatMessage(nil), messages...)

	screen, err := renderer.Render(portalState(domain.SubViewChatbot), nil, Transcript{Messages: messages, Typing: true})
	require.NoError(t, err)

	assert.LessOrEqual(t, ScreenLength(screen.Text), MaxScreenLength)
	assert.Contains(t, screen.Text, "weekly timetable")
	assert.Contains(t, screen.Text, "typing…")
	assert.Equal(t, before, messages)
}

func TestRenderer_ChatDropsOldestFirst(t *testing.T) {
	renderer := newTestRenderer(t)
	at := time.Date(2024, 10, 1, 9, 5, 0, 0, time.UTC)

	var messages []domain.ChatMessage
	for i := 0; i < 6; i++ {
		text := fmt.Sprintf("question %d ", i) + strings.Repeat("x", 1000)
		messages = append(messages, domain.NewChatMessage(text, domain.OriginUser, at))
	}

	screen, err := renderer.Render(portalState(domain.SubViewChatbot), nil, Transcript{Messages: messages})
	require.NoError(t, err)

	assert.LessOrEqual(t, ScreenLength(screen.Text), MaxScreenLength)
	assert.Contains(t, screen.Text, "question 5")
	assert.NotContains(t, screen.Text, "question 0")
	assert.Len(t, messages, 6)
	assert.True(t, strings.HasPrefix(messages[0].Text, "question 0"))
}

func TestRenderer_HugeChatMessage(t *testing.T) {
	renderer := newTestRenderer(t)
	at := time.Date(2024, 10, 1, 9, 5, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
	}{
		{"ascii", strings.Repeat("a", 5000)},
		{"escaped", strings.Repeat("<", 2000)},
		{"astral", strings.Repeat("😀", 3000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := []domain.ChatMessage{domain.NewChatMessage(tt.text, domain.OriginUser, at)}

			screen, err := renderer.Render(portalState(domain.SubViewChatbot), nil, Transcript{Messages: messages})
			require.NoError(t, err)

			assert.LessOrEqual(t, ScreenLength(screen.Text), MaxScreenLength)
			assert.Contains(t, screen.Text, "🧑 ")
			assert.Contains(t, screen.Text, "…")
			assert.Equal(t, tt.text, messages[0].Text)
		})
	}
}

func TestScreenLength(t *testing.T) {
	assert.Equal(t, 0, ScreenLength(""))
	assert.Equal(t, 3, ScreenLength("abc"))
	assert.Equal(t, 1, ScreenLength("…"))
	assert.Equal(t, 2, ScreenLength("😀"))
}
