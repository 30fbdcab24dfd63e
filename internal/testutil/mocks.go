package testutil

import (
	"sync"

	"campusportal/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockSlotRepository is a mock for SlotRepository
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Get(key string) ([]byte, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSlotRepository) Put(key string, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSlotRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockSlotRepository) CleanExpired(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

// MemorySlotRepository is an in-memory SlotRepository shared across sessions
type MemorySlotRepository struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemorySlotRepository creates an empty in-memory slot store
func NewMemorySlotRepository() *MemorySlotRepository {
	return &MemorySlotRepository{slots: make(map[string][]byte)}
}

func (r *MemorySlotRepository) Get(key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.slots[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (r *MemorySlotRepository) Put(key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[key] = append([]byte(nil), value...)
	return nil
}

func (r *MemorySlotRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, key)
	return nil
}

func (r *MemorySlotRepository) CleanExpired(days int) error {
	return nil
}

// RecordingPresenter collects everything a session presents
type RecordingPresenter struct {
	mu      sync.Mutex
	Screens []domain.Screen
	Notices []domain.Notice
}

func (p *RecordingPresenter) Show(screen domain.Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Screens = append(p.Screens, screen)
}

func (p *RecordingPresenter) Notify(notice domain.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Notices = append(p.Notices, notice)
}

// LastScreen returns the most recent screen
func (p *RecordingPresenter) LastScreen() (domain.Screen, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Screens) == 0 {
		return domain.Screen{}, false
	}
	return p.Screens[len(p.Screens)-1], true
}

// ScreenCount returns how many screens were shown
func (p *RecordingPresenter) ScreenCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Screens)
}

// NoticeTexts returns the text of every notice
func (p *RecordingPresenter) NoticeTexts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	texts := make([]string, 0, len(p.Notices))
	for _, n := range p.Notices {
		texts = append(texts, n.Text)
	}
	return texts
}
