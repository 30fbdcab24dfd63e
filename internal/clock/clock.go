package clock

import "time"

// Timer is a cancellable scheduled callback
type Timer interface {
	// Stop cancels the callback, reporting whether it was still pending
	Stop() bool
}

// Scheduler runs callbacks after a delay and tells the time
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// Wall schedules on the wall clock
type Wall struct{}

// NewWall creates a wall clock scheduler
func NewWall() Wall {
	return Wall{}
}

// AfterFunc runs f in its own goroutine after d
func (Wall) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Now returns the current time
func (Wall) Now() time.Time {
	return time.Now()
}
