package profiler

import (
	"time"

	"github.com/Carmen-Shannon/oxy-sg/engine/log"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often a report is logged.
//
// Parameters:
//   - interval: the report interval
//
// Returns:
//   - ProfilerBuilderOption: functional option to set the interval
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithLogger sets the logger reports are written to.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ProfilerBuilderOption: functional option to set the logger
func WithLogger(l log.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = l
	}
}

// WithClock replaces the time source.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - ProfilerBuilderOption: functional option to set the clock
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
