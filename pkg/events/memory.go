package events

import (
	"context"
	"sync"
)

type Published struct {
	Topic string
	Key   string
	Event map[string]any
}

// Memory keeps published events in order; tests inspect it and can make
// publishing fail by setting Err.
type Memory struct {
	mu     sync.Mutex
	events []Published
	Err    error
}

func (m *Memory) PublishEvent(_ context.Context, topic, key string, event map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.events = append(m.events, Published{Topic: topic, Key: key, Event: event})
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Events() []Published {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Published, len(m.events))
	copy(out, m.events)
	return out
}

func (m *Memory) ByType(eventType string) []Published {
	var out []Published
	for _, p := range m.Events() {
		if p.Event["type"] == eventType {
			out = append(out, p)
		}
	}
	return out
}
