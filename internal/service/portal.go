package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"campusportal/internal/clock"
	"campusportal/internal/repository"

	"go.uber.org/zap"
)

// Portal owns the session of every chat
type Portal struct {
	slots     repository.SlotRepository
	renderer  *Renderer
	responder *Responder
	scheduler clock.Scheduler
	logger    *zap.Logger
	opts      SessionOptions

	sessions map[int64]*Session
	seen     map[int64]time.Time
	mu       sync.RWMutex
}

// NewPortal creates a new portal
func NewPortal(
	slots repository.SlotRepository,
	renderer *Renderer,
	responder *Responder,
	scheduler clock.Scheduler,
	logger *zap.Logger,
	opts SessionOptions,
) *Portal {
	return &Portal{
		slots:     slots,
		renderer:  renderer,
		responder: responder,
		scheduler: scheduler,
		logger:    logger,
		opts:      opts,
		sessions:  make(map[int64]*Session),
		seen:      make(map[int64]time.Time),
	}
}

// SlotKey returns the remembered-identity slot of a chat
func SlotKey(chatID int64) string {
	return fmt.Sprintf("%s:%d", RememberedUserKey, chatID)
}

// Lookup returns the session of a chat if it exists
func (p *Portal) Lookup(chatID int64) (*Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.sessions[chatID]
	return s, ok
}

// Open returns the session of a chat. A new session is started with a
// presenter from newPresenter, restoring any remembered identity.
func (p *Portal) Open(chatID int64, newPresenter func() Presenter) *Session {
	p.mu.Lock()
	p.seen[chatID] = p.scheduler.Now()
	s, ok := p.sessions[chatID]
	if !ok {
		s = NewSession(
			NewIdentityStore(p.slots, SlotKey(chatID)),
			p.renderer,
			p.responder,
			newPresenter(),
			p.scheduler,
			p.logger.With(zap.Int64("chat_id", chatID)),
			p.opts,
		)
		p.sessions[chatID] = s
	}
	p.mu.Unlock()

	if !ok {
		p.logger.Info("Session opened", zap.Int64("chat_id", chatID))
		if err := s.Start(); err != nil {
			p.logger.Warn("Session started without remembered identity",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}
	return s
}

// EvictIdle closes the sessions not opened for maxIdle and returns their chats
func (p *Portal) EvictIdle(maxIdle time.Duration) []int64 {
	now := p.scheduler.Now()

	p.mu.Lock()
	var (
		chats   []int64
		evicted []*Session
	)
	for chatID, at := range p.seen {
		if now.Sub(at) < maxIdle {
			continue
		}
		if s, ok := p.sessions[chatID]; ok {
			evicted = append(evicted, s)
		}
		chats = append(chats, chatID)
		delete(p.sessions, chatID)
		delete(p.seen, chatID)
	}
	p.mu.Unlock()

	for _, s := range evicted {
		s.Close()
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i] < chats[j] })

	if len(chats) > 0 {
		p.logger.Info("Idle sessions evicted", zap.Int("count", len(chats)))
	}
	return chats
}

// Count returns the number of open sessions
func (p *Portal) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sessions)
}
