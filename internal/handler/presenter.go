package handler

import (
	"strings"
	"sync"
	"time"

	"campusportal/internal/clock"
	"campusportal/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// messenger is the part of the bot API the presenter needs
type messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
}

// telegramPresenter keeps one portal message per chat and edits it in place
type telegramPresenter struct {
	api            messenger
	chat           *tele.Chat
	scheduler      clock.Scheduler
	noticeDuration time.Duration
	logger         *zap.Logger

	mu      sync.Mutex
	message *tele.Message
}

func newTelegramPresenter(
	api messenger,
	chat *tele.Chat,
	scheduler clock.Scheduler,
	noticeDuration time.Duration,
	logger *zap.Logger,
) *telegramPresenter {
	return &telegramPresenter{
		api:            api,
		chat:           chat,
		scheduler:      scheduler,
		noticeDuration: noticeDuration,
		logger:         logger,
	}
}

// isNotModified reports the edit error Telegram returns for identical content
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// Show edits the portal message, or sends a new one if there is none
func (p *telegramPresenter) Show(screen domain.Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()

	markup := screenMarkup(screen.Actions)

	if p.message != nil {
		msg, err := p.api.Edit(p.message, screen.Text, markup, tele.ModeHTML)
		if err == nil {
			if msg != nil {
				p.message = msg
			}
			return
		}
		if isNotModified(err) {
			p.logger.Debug("Portal message already up to date")
			return
		}
		p.logger.Warn("Failed to edit message, sending new", zap.Error(err))
	}

	msg, err := p.api.Send(p.chat, screen.Text, markup, tele.ModeHTML)
	if err != nil {
		p.logger.Error("Failed to send portal message", zap.Error(err))
		return
	}
	p.message = msg
}

// Notify sends a notice and removes it after the notice duration
func (p *telegramPresenter) Notify(notice domain.Notice) {
	text := "✅ " + notice.Text
	if notice.Kind == domain.NoticeError {
		text = "⚠️ " + notice.Text
	}

	msg, err := p.api.Send(p.chat, text)
	if err != nil {
		p.logger.Error("Failed to send notice", zap.Error(err))
		return
	}

	p.scheduler.AfterFunc(p.noticeDuration, func() {
		if err := p.api.Delete(msg); err != nil {
			p.logger.Debug("Failed to delete notice", zap.Error(err))
		}
	})
}

// Detach makes the next screen arrive as a new message
func (p *telegramPresenter) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = nil
}
