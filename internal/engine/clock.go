package engine

import "time"

// Clock supplies "today" to the birthday scheduler.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system wall clock in local time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Handy for reproducible sessions.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
