package postgres

import (
	"database/sql"
)

// SlotRepo implements repository.SlotRepository
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo creates a new slot repository
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Get returns the value stored under key
func (r *SlotRepo) Get(key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM slots WHERE key = $1`
	err := r.db.QueryRow(query, key).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Put stores value under key, replacing any previous value
func (r *SlotRepo) Put(key string, value []byte) error {
	query := `
		INSERT INTO slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	// JSONB rejects lib/pq's bytea encoding of []byte
	_, err := r.db.Exec(query, key, string(value))
	return err
}

// Delete empties the slot. Deleting an empty slot is not an error.
func (r *SlotRepo) Delete(key string) error {
	query := `DELETE FROM slots WHERE key = $1`
	_, err := r.db.Exec(query, key)
	return err
}

// CleanExpired deletes slots not written for the given number of days
func (r *SlotRepo) CleanExpired(days int) error {
	query := `
		DELETE FROM slots
		WHERE updated_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
