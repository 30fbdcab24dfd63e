package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	chat := c.Chat()

	h.logger.Info("User started bot",
		zap.Int64("chat_id", chat.ID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetDraft(chat.ID)

	// A new session presents itself while it starts
	if _, ok := h.portal.Lookup(chat.ID); ok {
		h.presenter(chat).Detach()
		h.Session(c).Refresh()
		return nil
	}
	h.Session(c)
	return nil
}

// handleLogout handles /logout command
func (h *Handler) handleLogout(c tele.Context) error {
	chat := c.Chat()
	h.ResetDraft(chat.ID)

	if err := h.Session(c).Logout(); err != nil {
		h.logger.Error("Failed to forget remembered identity",
			zap.Error(err),
			zap.Int64("chat_id", chat.ID),
		)
	}
	return nil
}
