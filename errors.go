package xjournal

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by facade introspection when the default
// router was never activated. Introspection never bootstraps: asking a router
// that does not exist about its history is a caller bug worth surfacing.
var ErrNotInitialized = errors.New("xjournal: router not initialized")

// ValidationError reports a malformed runtime argument: a bad event, field,
// layout function or appender.
type ValidationError struct {
	Reason string
	Cause  error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("xjournal: %s: %v", e.Reason, e.Cause)
	}
	return "xjournal: " + e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// ConfigError reports an invalid construction-time parameter: an unknown
// level, action or severity, or a malformed sink option.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "xjournal: " + e.Reason }

// UniquenessError reports an attempt to register a second appender carrying
// an already-registered variant tag. Duplicate channels are a configuration
// bug and are never merged silently.
type UniquenessError struct {
	Variant Variant
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("xjournal: appender variant %q already registered", string(e.Variant))
}

// CriticalError is the deliberate escalation of an error or warning event
// under ActionExit. It carries the event and the exact line the appenders
// rendered; Error always terminates with that line so callers and humans can
// tell an escalation apart from an unrelated failure.
type CriticalError struct {
	Line  string
	Event *Event
}

func (e *CriticalError) Error() string {
	return "xjournal: critical event: " + e.Line
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConfig reports whether err is (or wraps) a ConfigError.
func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsUniqueness reports whether err is (or wraps) a UniquenessError.
func IsUniqueness(err error) bool {
	var target *UniquenessError
	return errors.As(err, &target)
}

// IsCritical reports whether err is (or wraps) a CriticalError.
func IsCritical(err error) bool {
	var target *CriticalError
	return errors.As(err, &target)
}

// AsCritical unwraps err into a *CriticalError when it is one, giving access
// to the escalated event and its rendered line.
func AsCritical(err error) (*CriticalError, bool) {
	var target *CriticalError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsNotInitialized reports whether err is ErrNotInitialized.
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}
