// Package internal provides test support shared by the contract packages.
package internal

import "time"

// MockClock is a manually driven clock for deterministic date defaults.
// It satisfies contract.Clock. It is not safe for concurrent use.
type MockClock struct {
	current time.Time
}

// NewMockClock creates a MockClock set to t.
// If t is zero it starts at 22.06.2022, the date the flight booker
// scenarios are written against.
func NewMockClock(t time.Time) *MockClock {
	if t.IsZero() {
		t = time.Date(2022, time.June, 22, 12, 0, 0, 0, time.UTC)
	}
	return &MockClock{current: t}
}

// Now returns the mock clock's current time.
func (m *MockClock) Now() time.Time {
	return m.current
}

// Advance moves the clock forward by the given duration.
// Panics if d is negative.
func (m *MockClock) Advance(d time.Duration) {
	if d < 0 {
		panic("MockClock.Advance: duration must be non-negative")
	}
	m.current = m.current.Add(d)
}

// AdvanceDays moves the clock forward by n calendar days.
func (m *MockClock) AdvanceDays(n int) {
	if n < 0 {
		panic("MockClock.AdvanceDays: days must be non-negative")
	}
	m.current = m.current.AddDate(0, 0, n)
}
