package broker

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory. Tests use it to assert on
// what a use case emitted.
type Recorder struct {
	mu     sync.Mutex
	Events []RecordedEvent
}

type RecordedEvent struct {
	Topic string
	Key   string
	Event Event
}

func (r *Recorder) Publish(_ context.Context, topic, key string, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, RecordedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Close() error { return nil }

// Snapshot returns a copy of the recorded events.
func (r *Recorder) Snapshot() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedEvent(nil), r.Events...)
}
