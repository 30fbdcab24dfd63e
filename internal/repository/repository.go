package repository

// SlotRepository defines durable key-value slot operations
type SlotRepository interface {
	// Get returns the slot value, or nil when the slot is empty
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	CleanExpired(days int) error
}
