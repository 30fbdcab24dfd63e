package redis

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// unreachableClient points at a port nothing listens on
func unreachableClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSlotRepo_UnreachableServer(t *testing.T) {
	repo := NewSlotRepo(unreachableClient(t), time.Hour)

	value, err := repo.Get("rememberedUser:1")
	assert.Error(t, err)
	assert.Nil(t, value)

	assert.Error(t, repo.Put("rememberedUser:1", []byte(`{"id":"S100"}`)))
	assert.Error(t, repo.Delete("rememberedUser:1"))
}

func TestSlotRepo_CleanExpired(t *testing.T) {
	repo := NewSlotRepo(unreachableClient(t), time.Hour)

	// expiry is delegated to key TTLs, so no round trip happens
	assert.NoError(t, repo.CleanExpired(30))
}
