package engine

import "time"

// Clock is the time source used to measure leaf-test durations.
// Injecting it keeps durations deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock time source used outside tests.
var SystemClock Clock = systemClock{}
