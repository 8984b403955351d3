package xjournal

import "sync"

// Memory is an in-memory sink that captures every delivered line and event
// in order. It backs tests and hosts that collect output after a run instead
// of streaming it.
type Memory struct {
	mu     sync.Mutex
	lines  []string
	events []*Event
}

// NewMemory returns an empty capture sink.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Variant() Variant { return VariantMemory }

func (m *Memory) String() string { return "memory" }

func (m *Memory) Deliver(line string, ev *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
	m.events = append(m.events, ev)
	return nil
}

// Lines returns a copy of the captured lines in delivery order.
func (m *Memory) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// Events returns a copy of the captured events in delivery order.
func (m *Memory) Events() []*Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Event, len(m.events))
	copy(out, m.events)
	return out
}

// Len returns the number of captured lines.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines)
}

// Reset drops everything captured so far.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
	m.events = nil
}

// NewMemoryAppender wraps a fresh memory sink in the template appender and
// returns both, so callers can register the appender and read the capture.
func NewMemoryAppender(scope *Scope) (Appender, *Memory, error) {
	m := NewMemory()
	a, err := NewAppender(m, scope)
	if err != nil {
		return nil, nil, err
	}
	return a, m, nil
}
