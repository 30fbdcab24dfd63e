package domain

// Page is a top-level view
type Page int

const (
	PageLogin Page = iota
	PagePortal
)

func (p Page) String() string {
	switch p {
	case PageLogin:
		return "login"
	case PagePortal:
		return "portal"
	}
	return "unknown"
}

// AuthMode selects which form the login page shows
type AuthMode int

const (
	AuthModeLogin AuthMode = iota
	AuthModeSignup
)

// SubView is a portal page
type SubView int

const (
	SubViewDashboard SubView = iota
	SubViewChatbot
	SubViewTimetable
	SubViewAttendance
	SubViewExams
	SubViewResources
	SubViewReminders

	subViewCount
)

// SubViewCount is the number of portal pages
const SubViewCount = int(subViewCount)

var subViewNames = [subViewCount]string{
	SubViewDashboard:  "dashboard",
	SubViewChatbot:    "chatbot",
	SubViewTimetable:  "timetable",
	SubViewAttendance: "attendance",
	SubViewExams:      "exams",
	SubViewResources:  "resources",
	SubViewReminders:  "reminders",
}

var subViewTitles = [subViewCount]string{
	SubViewDashboard:  "🏠 Dashboard",
	SubViewChatbot:    "🤖 Campus GPT",
	SubViewTimetable:  "📅 Timetable",
	SubViewAttendance: "✅ Attendance",
	SubViewExams:      "📝 Exams",
	SubViewResources:  "📚 Resources",
	SubViewReminders:  "🔔 Reminders",
}

// AllSubViews lists portal pages in menu order
func AllSubViews() []SubView {
	views := make([]SubView, 0, subViewCount)
	for v := SubView(0); v < subViewCount; v++ {
		views = append(views, v)
	}
	return views
}

// Valid reports whether v is one of the portal pages
func (v SubView) Valid() bool {
	return v >= 0 && v < subViewCount
}

func (v SubView) String() string {
	if !v.Valid() {
		return "unknown"
	}
	return subViewNames[v]
}

// Title returns the menu label
func (v SubView) Title() string {
	if !v.Valid() {
		return ""
	}
	return subViewTitles[v]
}

// ParseSubView maps a page name to its SubView
func ParseSubView(name string) (SubView, error) {
	for v, n := range subViewNames {
		if n == name {
			return SubView(v), nil
		}
	}
	return 0, &UnknownViewError{Name: name}
}

// ViewState is the currently displayed view
type ViewState struct {
	Page     Page
	AuthMode AuthMode
	SubView  SubView
	Loading  bool
}

// Authenticated reports whether the portal is shown
func (s ViewState) Authenticated() bool {
	return s.Page == PagePortal
}

// LoginState returns the initial unauthenticated view
func LoginState() ViewState {
	return ViewState{Page: PageLogin, AuthMode: AuthModeLogin}
}
