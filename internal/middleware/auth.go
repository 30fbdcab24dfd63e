package middleware

import (
	"campusportal/internal/domain"
	"campusportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// SessionFunc resolves the portal session of the update's chat
type SessionFunc func(c tele.Context) *service.Session

// portalOnly reports whether a callback needs an authenticated session
func portalOnly(target domain.ClickTarget, data string) bool {
	switch target {
	case domain.TargetMenuItem, domain.TargetQuickQuery:
		return true
	case domain.TargetForm:
		return domain.FormName(data) == domain.FormReminder
	}
	return false
}

// AuthMiddleware rejects portal callbacks from chats that are not logged in
func AuthMiddleware(sessions SessionFunc, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			callback := c.Callback()
			if callback == nil {
				return next(c)
			}
			target, data := domain.ResolveCallback(callback.Unique, callback.Data)
			if !portalOnly(target, data) {
				return next(c)
			}

			session := sessions(c)
			if session.Authenticated() {
				return next(c)
			}

			logger.Info("Portal callback from logged out chat",
				zap.Int64("chat_id", c.Chat().ID),
				zap.String("target", string(target)),
				zap.String("data", data),
			)
			session.Refresh()
			return c.Respond(&tele.CallbackResponse{
				Text:      "Please log in first",
				ShowAlert: true,
			})
		}
	}
}
