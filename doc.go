// Package xjournal is a structured event-logging core. Leveled log requests
// are admitted against a verbosity threshold, rendered through a shared
// layout, fanned out to registered appenders, and tracked in a critical
// history when the event is an error or a warning. Depending on the router's
// action, a critical event either lets the caller continue or escalates into
// a typed *CriticalError.
//
// The fastest start is the package facade, which bootstraps a default router
// (level WARN, action EXIT) on first use:
//
//	if err := xjournal.Error("disk full", xjournal.Str("mount", "/data")); err != nil {
//		// with action EXIT the event comes back as a *xjournal.CriticalError
//	}
//
// Hosts that need isolation construct routers explicitly:
//
//	r, err := xjournal.NewBuilder().
//		WithLevel(xjournal.LevelInfo).
//		WithAction(xjournal.ActionContinue).
//		Build()
//
// Appenders are registered per router and must be unique per variant. When an
// admitted event finds an empty registry, a console appender is registered
// automatically so nothing is dropped silently. Backend bridges for zerolog,
// zap, slog and host-document cells live under appender/.
package xjournal
