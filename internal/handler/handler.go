package handler

import (
	"sync"
	"time"

	"campusportal/internal/clock"
	"campusportal/internal/domain"
	"campusportal/internal/middleware"
	"campusportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot            *tele.Bot
	api            messenger
	portal         *service.Portal
	scheduler      clock.Scheduler
	noticeDuration time.Duration
	logger         *zap.Logger

	// Form drafts being collected message by message
	drafts   map[int64]*domain.FormDraft
	draftMux sync.RWMutex

	presenters   map[int64]*telegramPresenter
	presenterMux sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	portal *service.Portal,
	scheduler clock.Scheduler,
	noticeDuration time.Duration,
	logger *zap.Logger,
) *Handler {
	h := newHandler(bot, portal, scheduler, noticeDuration, logger)
	h.bot = bot
	return h
}

func newHandler(
	api messenger,
	portal *service.Portal,
	scheduler clock.Scheduler,
	noticeDuration time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		api:            api,
		portal:         portal,
		scheduler:      scheduler,
		noticeDuration: noticeDuration,
		logger:         logger,
		drafts:         make(map[int64]*domain.FormDraft),
		presenters:     make(map[int64]*telegramPresenter),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/logout", h.handleLogout)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Inline buttons arrive here with the target inside the raw payload
	h.bot.Handle(tele.OnCallback, h.handleCallback, middleware.AuthMiddleware(h.Session, h.logger))
}

// Session returns the portal session of the chat, opening it on first use
func (h *Handler) Session(c tele.Context) *service.Session {
	chat := c.Chat()
	return h.portal.Open(chat.ID, func() service.Presenter {
		return h.presenter(chat)
	})
}

// presenter returns the presenter bound to chat
func (h *Handler) presenter(chat *tele.Chat) *telegramPresenter {
	h.presenterMux.Lock()
	defer h.presenterMux.Unlock()

	p, ok := h.presenters[chat.ID]
	if !ok {
		p = newTelegramPresenter(h.api, chat, h.scheduler, h.noticeDuration,
			h.logger.With(zap.Int64("chat_id", chat.ID)))
		h.presenters[chat.ID] = p
	}
	return p
}

// EvictIdle forgets every chat idle for maxIdle and returns how many
func (h *Handler) EvictIdle(maxIdle time.Duration) int {
	chats := h.portal.EvictIdle(maxIdle)

	h.presenterMux.Lock()
	for _, chatID := range chats {
		delete(h.presenters, chatID)
	}
	h.presenterMux.Unlock()

	h.draftMux.Lock()
	for _, chatID := range chats {
		delete(h.drafts, chatID)
	}
	h.draftMux.Unlock()

	return len(chats)
}

// GetDraft returns a snapshot of the chat's form draft, or nil
func (h *Handler) GetDraft(chatID int64) *domain.FormDraft {
	h.draftMux.RLock()
	defer h.draftMux.RUnlock()

	draft, ok := h.drafts[chatID]
	if !ok {
		return nil
	}
	return draft.Clone()
}

// FillDraft stores value for the field awaiting input and returns that field
// with a snapshot of the draft. When field is not empty the draft must be
// waiting for it. A completed draft is removed. The snapshot is nil when
// nothing was filled.
func (h *Handler) FillDraft(chatID int64, field, value string) (string, *domain.FormDraft) {
	h.draftMux.Lock()
	defer h.draftMux.Unlock()

	draft, ok := h.drafts[chatID]
	if !ok {
		return "", nil
	}
	current := draft.Field()
	if field != "" && current != field {
		return "", nil
	}

	draft.Fill(value)
	if draft.Done() {
		delete(h.drafts, chatID)
	}
	return current, draft.Clone()
}

// SetDraft starts or replaces the chat's form draft
func (h *Handler) SetDraft(chatID int64, draft *domain.FormDraft) {
	h.draftMux.Lock()
	defer h.draftMux.Unlock()
	h.drafts[chatID] = draft
}

// ResetDraft drops the chat's form draft
func (h *Handler) ResetDraft(chatID int64) {
	h.draftMux.Lock()
	defer h.draftMux.Unlock()
	delete(h.drafts, chatID)
}

// Inline keyboard buttons
var (
	btnCancel = tele.Btn{
		Unique: string(domain.TargetCancel),
		Text:   "❌ Cancel",
	}
	btnRememberYes = tele.Btn{
		Unique: string(domain.TargetRemember),
		Text:   "✅ Yes",
		Data:   "yes",
	}
	btnRememberNo = tele.Btn{
		Unique: string(domain.TargetRemember),
		Text:   "🚫 No",
		Data:   "no",
	}
)

// promptMarkup returns the keyboard shown under a form prompt
func promptMarkup(field string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	if field == domain.FieldRememberMe {
		markup.Inline(
			markup.Row(btnRememberYes, btnRememberNo),
			markup.Row(btnCancel),
		)
		return markup
	}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

// screenMarkup converts screen actions to an inline keyboard
func screenMarkup(actions [][]domain.Action) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(actions))
	for _, line := range actions {
		row := make(tele.Row, 0, len(line))
		for _, action := range line {
			row = append(row, markup.Data(action.Label, string(action.Click.Target), action.Click.Data()))
		}
		rows = append(rows, row)
	}
	markup.Inline(rows...)
	return markup
}
