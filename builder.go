package xjournal

import "github.com/trickstertwo/xclock"

// Builder assembles a router Config fluently, seeded with the library
// defaults: LevelWarn, ActionExit. Build performs the same validation as
// New.
type Builder struct {
	cfg Config
}

// NewBuilder returns a builder carrying the library defaults.
func NewBuilder() *Builder {
	return &Builder{cfg: Config{Level: LevelWarn, Action: ActionExit}}
}

// WithLevel sets the admission threshold.
func (b *Builder) WithLevel(l Level) *Builder {
	b.cfg.Level = l
	return b
}

// WithAction sets the critical-event action.
func (b *Builder) WithAction(a Action) *Builder {
	b.cfg.Action = a
	return b
}

// WithScope sets the scope the router renders and mints through.
func (b *Builder) WithScope(s *Scope) *Builder {
	b.cfg.Scope = s
	return b
}

// WithClock sets the clock that stamps minted events.
func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

// AddAppender seeds the registry.
func (b *Builder) AddAppender(a Appender) *Builder {
	b.cfg.Appenders = append(b.cfg.Appenders, a)
	return b
}

// AddObserver registers o for dispatch notifications.
func (b *Builder) AddObserver(o Observer) *Builder {
	b.cfg.Observers = append(b.cfg.Observers, o)
	return b
}

// Build constructs the router.
func (b *Builder) Build() (*Router, error) {
	return New(b.cfg)
}
