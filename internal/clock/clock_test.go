package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWall_AfterFunc(t *testing.T) {
	done := make(chan struct{})
	NewWall().AfterFunc(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}
}

func TestWall_Stop(t *testing.T) {
	var fired atomic.Bool
	timer := NewWall().AfterFunc(50*time.Millisecond, func() { fired.Store(true) })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	time.Sleep(100 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestWall_Now(t *testing.T) {
	before := time.Now()
	now := NewWall().Now()
	assert.False(t, now.Before(before))
}
