// Package events provides a low-overhead event system for tracking
// aggregation timing and row counts. A nil collector disables all
// recording, so the aggregators carry no instrumentation cost unless a
// caller opts in.
package events

import (
	"sync"
	"time"
)

// Event name constants following hierarchical naming pattern
const (
	// Streaming aggregation lifecycle
	ScanBegin     = "scan/begin"
	ScanCompleted = "scan/completed"

	// In-memory aggregation lifecycle
	PivotBegin     = "pivot/begin"
	PivotCompleted = "pivot/completed"

	// Output emission
	EmitCompleted = "emit/completed"

	// Errors
	ErrorAggregation = "error/aggregation"
	ErrorEmit        = "error/emit"
)

// Event represents a single timed occurrence during an aggregation run.
type Event struct {
	Name    string                 // Event name using the constants above
	Start   time.Time              // Start timestamp
	End     time.Time              // End timestamp
	Latency time.Duration          // Duration (End - Start)
	Data    map[string]interface{} // Additional event-specific data
}

// Handler processes events as they occur.
type Handler func(event Event)

// Collector accumulates events during an aggregation run.
type Collector struct {
	enabled bool
	handler Handler
	events  []Event
	mu      sync.Mutex
}

// NewCollector creates a collector. A nil handler still records events;
// a nil *Collector records nothing.
func NewCollector(handler Handler) *Collector {
	return &Collector{
		enabled: true,
		handler: handler,
		events:  make([]Event, 0, 16),
	}
}

// Add records an event. Safe to call on a nil collector.
func (c *Collector) Add(event Event) {
	if c == nil || !c.enabled {
		return
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()

	// Call handler outside the lock to avoid deadlocks
	if c.handler != nil {
		c.handler(event)
	}
}

// AddTiming records an event spanning from start to now.
func (c *Collector) AddTiming(name string, start time.Time, data map[string]interface{}) {
	if c == nil || !c.enabled {
		return
	}

	end := time.Now()
	c.Add(Event{
		Name:    name,
		Start:   start,
		End:     end,
		Latency: end.Sub(start),
		Data:    data,
	})
}

// Events returns a copy of all collected events.
func (c *Collector) Events() []Event {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	eventsCopy := make([]Event, len(c.events))
	copy(eventsCopy, c.events)
	return eventsCopy
}

// Reset clears the collector for reuse, keeping its handler.
func (c *Collector) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
}
