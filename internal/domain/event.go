package domain

import (
	"strings"
	"unicode"
)

// Event is a UI event delivered to a session
type Event interface {
	event()
}

// ClickTarget classifies the clicked element
type ClickTarget string

const (
	TargetMenuItem   ClickTarget = "menu"
	TargetQuickQuery ClickTarget = "query"
	TargetLogout     ClickTarget = "logout"
	TargetShowSignup ClickTarget = "show_signup"
	TargetShowLogin  ClickTarget = "show_login"
	TargetForm       ClickTarget = "form"
	TargetRemember   ClickTarget = "remember"
	TargetCancel     ClickTarget = "cancel"
)

// ClickEvent is a click with its data attributes
type ClickEvent struct {
	Target ClickTarget
	Page   string
	Query  string
	Form   FormName
}

// Data returns the single data attribute carried by the click
func (e ClickEvent) Data() string {
	switch {
	case e.Page != "":
		return e.Page
	case e.Query != "":
		return e.Query
	case e.Form != "":
		return string(e.Form)
	}
	return ""
}

// ParseClick rebuilds a click from its target and data attribute
func ParseClick(target, data string) ClickEvent {
	ev := ClickEvent{Target: ClickTarget(target)}
	switch ev.Target {
	case TargetMenuItem:
		ev.Page = data
	case TargetQuickQuery, TargetRemember:
		ev.Query = data
	case TargetForm:
		ev.Form = FormName(data)
	}
	return ev
}

// CleanCallbackData removes all non-printable characters from callback data
func CleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// ResolveCallback returns the click target and data of a callback.
// Callbacks delivered to the generic handler carry an empty unique and the
// raw "\fTARGET|DATA" payload as data.
func ResolveCallback(unique, data string) (ClickTarget, string) {
	data = CleanCallbackData(data)
	if unique != "" {
		return ClickTarget(unique), data
	}
	target, rest, _ := strings.Cut(data, "|")
	return ClickTarget(target), rest
}

// SubmitEvent carries form field values by field name
type SubmitEvent struct {
	Form   FormName
	Fields map[string]string
}

func (ClickEvent) event()  {}
func (SubmitEvent) event() {}
