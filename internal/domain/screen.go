package domain

// Action is a button attached to a screen
type Action struct {
	Label string
	Click ClickEvent
}

// Screen is rendered view content ready for a presenter
type Screen struct {
	Page    Page
	SubView SubView
	Loading bool
	Text    string
	Actions [][]Action
}

// NoticeKind classifies a transient notice
type NoticeKind int

const (
	NoticeError NoticeKind = iota
	NoticeInfo
)

// Notice is a transient, auto-dismissing message
type Notice struct {
	Kind NoticeKind
	Text string
}
