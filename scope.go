package xjournal

import "sync"

// Scope carries the state every participant in one routing pipeline must
// agree on: the shared Layout and the shared event Factory. Both slots are
// configure-once. The first writer wins and later writes are deliberate
// no-ops, so every appender attached to the scope renders identically for
// the life of the process. Reading a slot before it was ever set installs
// the library default, which then counts as the first write.
//
// Scope is an explicit value rather than package globals so tests and
// embedded hosts can run isolated pipelines side by side. DefaultScope is
// the process-wide instance the package facade uses.
type Scope struct {
	mu      sync.Mutex
	layout  Layout
	factory Factory
}

// NewScope returns an empty scope with both slots unset.
func NewScope() *Scope { return &Scope{} }

var defaultScope = NewScope()

// DefaultScope returns the process-wide scope.
func DefaultScope() *Scope { return defaultScope }

// Layout returns the scope's layout, installing LongLayout on first use.
func (s *Scope) Layout() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.layout == nil {
		s.layout = LongLayout{}
	}
	return s.layout
}

// SetLayout installs l as the shared layout. The first successful call wins;
// once a layout is in place (set or lazily installed) further calls return
// nil without effect. A nil layout or one that cannot render the probe event
// is rejected.
func (s *Scope) SetLayout(l Layout) error {
	if l == nil {
		return &ValidationError{Reason: "layout must not be nil"}
	}
	if err := probeLayout(l); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.layout != nil {
		return nil
	}
	s.layout = l
	return nil
}

// Factory returns the scope's event factory, installing NewEvent on first
// use.
func (s *Scope) Factory() Factory {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.factory == nil {
		s.factory = defaultFactory
	}
	return s.factory
}

// SetFactory installs f as the shared event factory; first call wins, like
// SetLayout. Factory output is revalidated at every use site, so a custom
// factory cannot push malformed events into the pipeline.
func (s *Scope) SetFactory(f Factory) error {
	if f == nil {
		return &ValidationError{Reason: "event factory must not be nil"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.factory != nil {
		return nil
	}
	s.factory = f
	return nil
}
