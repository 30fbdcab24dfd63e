package handler

import (
	"errors"

	"campusportal/internal/domain"
	"campusportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// clickError converts a rejected click into a callback answer
func clickError(err error) *tele.CallbackResponse {
	var unknown *domain.UnknownViewError
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return &tele.CallbackResponse{Text: "Please log in first", ShowAlert: true}
	case errors.Is(err, domain.ErrChatUnavailable):
		return &tele.CallbackResponse{Text: "The assistant is not ready yet"}
	case errors.As(err, &unknown):
		return &tele.CallbackResponse{Text: "This page is not available"}
	}
	return &tele.CallbackResponse{Text: "Something went wrong"}
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Unique is empty unless a button endpoint was registered for it
	target, data := domain.ResolveCallback(callback.Unique, callback.Data)

	chatID := c.Chat().ID
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("target", string(target)),
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("chat_id", chatID),
	)

	session := h.Session(c)

	switch target {
	case domain.TargetMenuItem,
		domain.TargetQuickQuery,
		domain.TargetLogout,
		domain.TargetShowSignup,
		domain.TargetShowLogin:
		return h.handleClick(c, session, domain.ParseClick(string(target), data))
	case domain.TargetForm:
		return h.handleFormStart(c, session, domain.FormName(data))
	case domain.TargetRemember:
		return h.handleRemember(c, session, data)
	case domain.TargetCancel:
		return h.handleCancel(c, session)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("target", string(target)),
	)
	return c.Respond()
}

// handleClick dispatches a portal click to the session
func (h *Handler) handleClick(c tele.Context, session *service.Session, ev domain.ClickEvent) error {
	if ev.Target == domain.TargetLogout {
		h.ResetDraft(c.Chat().ID)
	}

	if err := session.Dispatch(ev); err != nil {
		if ev.Target == domain.TargetLogout {
			h.logger.Error("Failed to forget remembered identity", zap.Error(err))
			return c.Respond()
		}
		h.logger.Info("Click rejected",
			zap.Error(err),
			zap.String("target", string(ev.Target)),
			zap.String("data", ev.Data()),
		)
		return c.Respond(clickError(err))
	}
	return c.Respond()
}

// handleFormStart begins collecting a form. The reminder form needs a
// logged in session, login and signup need a logged out one.
func (h *Handler) handleFormStart(c tele.Context, session *service.Session, form domain.FormName) error {
	if !form.Valid() {
		h.logger.Warn("Unknown form requested", zap.String("form", string(form)))
		return c.Respond()
	}

	if authenticated := session.Authenticated(); authenticated != (form == domain.FormReminder) {
		h.logger.Info("Form rejected for session state",
			zap.String("form", string(form)),
			zap.Bool("authenticated", authenticated),
			zap.Int64("chat_id", c.Chat().ID),
		)
		session.Refresh()
		if authenticated {
			return c.Respond(&tele.CallbackResponse{Text: "You are already logged in"})
		}
		return c.Respond(clickError(domain.ErrNotAuthenticated))
	}

	draft := domain.NewFormDraft(form)
	h.SetDraft(c.Chat().ID, draft)

	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.prompt(c, draft)
}

// handleRemember answers the remember-me step of a login draft
func (h *Handler) handleRemember(c tele.Context, session *service.Session, answer string) error {
	_, draft := h.FillDraft(c.Chat().ID, domain.FieldRememberMe, answer)
	if draft == nil {
		return c.Respond(&tele.CallbackResponse{Text: "This form has expired"})
	}

	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	if msg := c.Message(); msg != nil {
		if err := c.Delete(); err != nil {
			h.logger.Debug("Failed to delete prompt", zap.Error(err))
		}
	}
	return h.advance(c, session, draft)
}

// handleCancel drops the current draft and presents the view again
func (h *Handler) handleCancel(c tele.Context, session *service.Session) error {
	h.ResetDraft(c.Chat().ID)

	if c.Message() != nil {
		if err := c.Delete(); err != nil {
			h.logger.Debug("Failed to delete prompt", zap.Error(err))
		}
	}
	if err := session.Dispatch(domain.ClickEvent{Target: domain.TargetCancel}); err != nil {
		h.logger.Warn("Cancel failed", zap.Error(err))
	}
	return c.Respond()
}
