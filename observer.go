package xjournal

// Observer receives every event the router dispatched to its appenders,
// after fan-out and before critical accounting. Observers see the shared
// event instance and must not block; implementations must be safe for
// concurrent use.
type Observer interface {
	OnEvent(ev *Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(ev *Event)

func (f ObserverFunc) OnEvent(ev *Event) { f(ev) }
