package clock

import "time"

// Clock is the time source consulted by time-sensitive operations.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// MockClock always returns the instant it was set to. Useful to drive
// auction expiry in tests.
type MockClock struct {
	Current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{Current: t}
}

func (c *MockClock) Now() time.Time {
	return c.Current
}

func (c *MockClock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
