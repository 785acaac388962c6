// Package progress provides progress sinks for folder transfers.
//
// The engine pushes completion counts through the Sink interface; this
// package supplies a plain counter for non-interactive use and an
// mpb-backed terminal UI.
package progress

import "sync/atomic"

// Sink receives one report per settled transfer unit. Implementations
// must be safe for concurrent use; the engine calls Report from many
// goroutines.
type Sink interface {
	Report(completed, total int)
}

// Counter is a Sink that just remembers the latest counts.
type Counter struct {
	completed atomic.Int64
	total     atomic.Int64
	reports   atomic.Int64
}

// Report records the latest completed/total pair.
func (c *Counter) Report(completed, total int) {
	c.completed.Store(int64(completed))
	c.total.Store(int64(total))
	c.reports.Add(1)
}

// Completed returns the last reported completion count.
func (c *Counter) Completed() int { return int(c.completed.Load()) }

// Total returns the last reported total.
func (c *Counter) Total() int { return int(c.total.Load()) }

// Reports returns how many times Report was invoked.
func (c *Counter) Reports() int { return int(c.reports.Load()) }

// Discard is a Sink that ignores all reports.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(completed, total int) {}
