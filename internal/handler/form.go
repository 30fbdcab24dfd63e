package handler

import (
	"errors"
	"strings"

	"campusportal/internal/domain"
	"campusportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var fieldPrompts = map[string]string{
	domain.FieldStudentID:       "🆔 Enter your Student ID:",
	domain.FieldPassword:        "🔒 Enter your password. The message will be removed from the chat.",
	domain.FieldRememberMe:      "💾 Remember me in this chat?",
	domain.FieldFullName:        "👤 Enter your full name:",
	domain.FieldEmail:           "📧 Enter your email:",
	domain.FieldNewStudentID:    "🆔 Choose your Student ID:",
	domain.FieldNewPassword:     "🔒 Choose a password. The message will be removed from the chat.",
	domain.FieldConfirmPassword: "🔒 Confirm the password:",
	domain.FieldReminderTitle:   "📝 Reminder title:",
	domain.FieldReminderDesc:    "🗒 Description:",
	domain.FieldReminderDate:    "📅 Due date (YYYY-MM-DD HH:MM):",
}

// fieldPrompt returns the question asked for field
func fieldPrompt(field string) string {
	prompt, ok := fieldPrompts[field]
	if !ok {
		prompt = field + ":"
	}
	if field == domain.FieldRememberMe {
		return prompt
	}
	return prompt + "\nSend - to leave it blank."
}

// prompt asks for the draft's current field
func (h *Handler) prompt(c tele.Context, draft *domain.FormDraft) error {
	field := draft.Field()
	return c.Send(fieldPrompt(field), promptMarkup(field))
}

// handleText handles all text messages based on the chat's draft and view
func (h *Handler) handleText(c tele.Context) error {
	chatID := c.Chat().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	session := h.Session(c)

	if field, draft := h.FillDraft(chatID, "", text); draft != nil {
		if domain.SecretField(field) {
			if err := c.Delete(); err != nil {
				h.logger.Warn("Failed to delete password message",
					zap.Error(err),
					zap.Int64("chat_id", chatID),
				)
			}
		}
		return h.advance(c, session, draft)
	}

	if session.State().SubView == domain.SubViewChatbot && session.Authenticated() {
		err := session.SendChat(text)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrChatUnavailable) {
			return err
		}
		h.logger.Debug("Chat message ignored while loading", zap.Int64("chat_id", chatID))
	}

	h.presenter(c.Chat()).Detach()
	session.Refresh()
	return nil
}

// advance prompts for the next field of a filled draft snapshot, or submits
// it once it is complete
func (h *Handler) advance(c tele.Context, session *service.Session, draft *domain.FormDraft) error {
	chatID := c.Chat().ID

	if !draft.Done() {
		return h.prompt(c, draft)
	}

	ev := draft.Submit()

	err := session.Dispatch(ev)
	var validation *domain.ValidationError
	var mismatch *domain.MismatchError
	switch {
	case err == nil:
		h.logger.Info("Form submitted", zap.String("form", string(ev.Form)), zap.Int64("chat_id", chatID))
	case errors.As(err, &validation), errors.As(err, &mismatch):
		// already shown to the user as a notice
	case errors.Is(err, domain.ErrNotAuthenticated):
		h.logger.Info("Form submitted after logout", zap.String("form", string(ev.Form)), zap.Int64("chat_id", chatID))
		session.Refresh()
	default:
		h.logger.Error("Form submission failed",
			zap.Error(err),
			zap.String("form", string(ev.Form)),
			zap.Int64("chat_id", chatID),
		)
	}
	return nil
}
