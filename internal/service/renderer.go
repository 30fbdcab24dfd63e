package service

import (
	"fmt"
	"unicode/utf16"

	"campusportal/internal/content"
	"campusportal/internal/domain"
)

// defaultName is shown when no identity is loaded
const defaultName = "Student"

// MaxScreenLength is the longest message text Telegram accepts
const MaxScreenLength = 4096

// maxChatMessages bounds how much of the transcript the chatbot page shows
const maxChatMessages = 20

// ContentProvider supplies templates and mock data
type ContentProvider interface {
	Execute(name string, data any) (string, error)
	Catalog() *content.Catalog
}

// Transcript is the chat shown on the chatbot page
type Transcript struct {
	Messages []domain.ChatMessage
	Typing   bool
}

// Renderer turns a view state into a screen
type Renderer struct {
	content ContentProvider
}

// NewRenderer creates a new renderer
func NewRenderer(content ContentProvider) *Renderer {
	return &Renderer{content: content}
}

// blockFunc builds template data and view-local actions for a portal page
type blockFunc func(r *Renderer, identity *domain.Identity, chat Transcript) (any, [][]domain.Action)

var blocks = [domain.SubViewCount]blockFunc{
	domain.SubViewDashboard:  (*Renderer).dashboard,
	domain.SubViewChatbot:    (*Renderer).chatbot,
	domain.SubViewTimetable:  (*Renderer).timetable,
	domain.SubViewAttendance: (*Renderer).attendance,
	domain.SubViewExams:      (*Renderer).exams,
	domain.SubViewResources:  (*Renderer).resources,
	domain.SubViewReminders:  (*Renderer).reminders,
}

// Render produces the screen for state. chat is only read on the chatbot page.
func (r *Renderer) Render(state domain.ViewState, identity *domain.Identity, chat Transcript) (domain.Screen, error) {
	switch state.Page {
	case domain.PageLogin:
		return r.login(state)
	case domain.PagePortal:
		return r.portal(state, identity, chat)
	}
	return domain.Screen{}, fmt.Errorf("unknown page %d", state.Page)
}

func (r *Renderer) login(state domain.ViewState) (domain.Screen, error) {
	name := "login.html"
	actions := [][]domain.Action{{
		{Label: "🔑 Log in", Click: domain.ClickEvent{Target: domain.TargetForm, Form: domain.FormLogin}},
		{Label: "📝 Sign up", Click: domain.ClickEvent{Target: domain.TargetShowSignup}},
	}}
	if state.AuthMode == domain.AuthModeSignup {
		name = "signup.html"
		actions = [][]domain.Action{{
			{Label: "📝 Create account", Click: domain.ClickEvent{Target: domain.TargetForm, Form: domain.FormSignup}},
			{Label: "◀️ Back to login", Click: domain.ClickEvent{Target: domain.TargetShowLogin}},
		}}
	}

	text, err := r.content.Execute(name, nil)
	if err != nil {
		return domain.Screen{}, err
	}
	return domain.Screen{Page: domain.PageLogin, Text: text, Actions: actions}, nil
}

func (r *Renderer) portal(state domain.ViewState, identity *domain.Identity, chat Transcript) (domain.Screen, error) {
	if !state.SubView.Valid() {
		return domain.Screen{}, &domain.UnknownViewError{Name: state.SubView.String()}
	}

	showChat := state.SubView == domain.SubViewChatbot && !state.Loading
	if showChat && len(chat.Messages) > maxChatMessages {
		chat.Messages = chat.Messages[len(chat.Messages)-maxChatMessages:]
	}

	text, actions, err := r.compose(state, identity, chat)
	for err == nil && showChat {
		excess := ScreenLength(text) - MaxScreenLength
		if excess <= 0 || len(chat.Messages) == 0 {
			break
		}
		chat.Messages = shrinkTranscript(chat.Messages, excess)
		text, actions, err = r.compose(state, identity, chat)
	}
	if err != nil {
		return domain.Screen{}, err
	}

	actions = append(actions, menuActions(state.SubView)...)
	actions = append(actions, []domain.Action{
		{Label: "🚪 Logout", Click: domain.ClickEvent{Target: domain.TargetLogout}},
	})

	return domain.Screen{
		Page:    domain.PagePortal,
		SubView: state.SubView,
		Loading: state.Loading,
		Text:    text,
		Actions: actions,
	}, nil
}

// compose renders the portal frame around the sub-view body
func (r *Renderer) compose(state domain.ViewState, identity *domain.Identity, chat Transcript) (string, [][]domain.Action, error) {
	var (
		body    string
		actions [][]domain.Action
		err     error
	)
	if state.Loading {
		body, err = r.content.Execute("loading.html", nil)
	} else {
		var data any
		data, actions = blocks[state.SubView](r, identity, chat)
		body, err = r.content.Execute(state.SubView.String()+".html", data)
	}
	if err != nil {
		return "", nil, err
	}

	text, err := r.content.Execute("portal.html", struct {
		Name  string
		Title string
		Body  string
	}{
		Name:  identity.NameOr(defaultName),
		Title: state.SubView.Title(),
		Body:  body,
	})
	if err != nil {
		return "", nil, err
	}
	return text, actions, nil
}

// ScreenLength counts text the way Telegram limits it, in UTF-16 code units
func ScreenLength(text string) int {
	return len(utf16.Encode([]rune(text)))
}

// shrinkTranscript drops the oldest message. A lone user message is cut
// down instead. The input slice is never modified.
func shrinkTranscript(messages []domain.ChatMessage, excess int) []domain.ChatMessage {
	if len(messages) > 1 {
		return messages[1:]
	}
	last := messages[0]
	if !last.FromUser() {
		return nil
	}
	runes := []rune(last.Text)
	keep := len(runes) - excess - 1
	if keep < 1 {
		// escaping can make the text longer than its runes
		keep = len(runes) / 2
	}
	if keep < 1 {
		return nil
	}
	last.Text = string(runes[:keep]) + "…"
	return []domain.ChatMessage{last}
}

// menuActions lays the portal menu out two buttons per row
func menuActions(active domain.SubView) [][]domain.Action {
	var rows [][]domain.Action
	var row []domain.Action
	for _, v := range domain.AllSubViews() {
		label := v.Title()
		if v == active {
			label = "▸ " + label
		}
		row = append(row, navigate(label, v))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func navigate(label string, v domain.SubView) domain.Action {
	return domain.Action{Label: label, Click: domain.ClickEvent{Target: domain.TargetMenuItem, Page: v.String()}}
}

func (r *Renderer) dashboard(identity *domain.Identity, _ Transcript) (any, [][]domain.Action) {
	data := struct {
		Name      string
		Dashboard content.Dashboard
	}{
		Name:      identity.NameOr(defaultName),
		Dashboard: r.content.Catalog().Dashboard,
	}
	actions := [][]domain.Action{
		{navigate("🤖 Ask Campus GPT", domain.SubViewChatbot)},
		{navigate("📅 View Timetable", domain.SubViewTimetable), navigate("📝 Exam Schedule", domain.SubViewExams)},
	}
	return data, actions
}

// quickQueries are the chatbot shortcut buttons
var quickQueries = []struct {
	label string
	query string
}{
	{"Show Timetable", "timetable"},
	{"Upcoming Events", "events"},
	{"Exam Schedule", "exams"},
	{"My Attendance", "attendance"},
}

func (r *Renderer) chatbot(_ *domain.Identity, chat Transcript) (any, [][]domain.Action) {
	var rows [][]domain.Action
	for i := 0; i < len(quickQueries); i += 2 {
		var row []domain.Action
		for _, q := range quickQueries[i:min(i+2, len(quickQueries))] {
			row = append(row, domain.Action{
				Label: q.label,
				Click: domain.ClickEvent{Target: domain.TargetQuickQuery, Query: q.query},
			})
		}
		rows = append(rows, row)
	}
	return chat, rows
}

func (r *Renderer) timetable(_ *domain.Identity, _ Transcript) (any, [][]domain.Action) {
	catalog := r.content.Catalog()
	return struct {
		Semester  string
		Timetable content.Timetable
	}{catalog.Semester, catalog.Timetable}, nil
}

func (r *Renderer) attendance(_ *domain.Identity, _ Transcript) (any, [][]domain.Action) {
	catalog := r.content.Catalog()
	return struct {
		Semester   string
		Attendance content.Attendance
	}{catalog.Semester, catalog.Attendance}, nil
}

func (r *Renderer) exams(_ *domain.Identity, _ Transcript) (any, [][]domain.Action) {
	catalog := r.content.Catalog()
	return struct {
		Semester string
		Exams    content.Exams
	}{catalog.Semester, catalog.Exams}, nil
}

func (r *Renderer) resources(_ *domain.Identity, _ Transcript) (any, [][]domain.Action) {
	return struct {
		Resources content.Resources
	}{r.content.Catalog().Resources}, nil
}

func (r *Renderer) reminders(_ *domain.Identity, _ Transcript) (any, [][]domain.Action) {
	actions := [][]domain.Action{{
		{Label: "➕ Add Reminder", Click: domain.ClickEvent{Target: domain.TargetForm, Form: domain.FormReminder}},
	}}
	return struct {
		Reminders content.Reminders
	}{r.content.Catalog().Reminders}, actions
}
