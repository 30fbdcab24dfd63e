package service

import (
	"encoding/json"
	"fmt"

	"campusportal/internal/domain"
	"campusportal/internal/repository"
)

// RememberedUserKey is the slot key holding the remembered identity
const RememberedUserKey = "rememberedUser"

// IdentityStore keeps one identity in a durable slot
type IdentityStore struct {
	slots repository.SlotRepository
	key   string
}

// NewIdentityStore creates a store bound to a single slot key
func NewIdentityStore(slots repository.SlotRepository, key string) *IdentityStore {
	return &IdentityStore{
		slots: slots,
		key:   key,
	}
}

// Key returns the slot key
func (s *IdentityStore) Key() string {
	return s.key
}

// Load returns the remembered identity, or nil when the slot is empty
func (s *IdentityStore) Load() (*domain.Identity, error) {
	data, err := s.slots.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}
	if data == nil {
		return nil, nil
	}

	var identity domain.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("failed to decode slot %s: %w", s.key, err)
	}
	return &identity, nil
}

// Save writes identity to the slot
func (s *IdentityStore) Save(identity domain.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := s.slots.Put(s.key, data); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}

// Clear empties the slot
func (s *IdentityStore) Clear() error {
	if err := s.slots.Delete(s.key); err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", s.key, err)
	}
	return nil
}
