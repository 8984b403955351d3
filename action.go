package xjournal

import (
	"fmt"
	"strings"
)

// Action decides what a critical event does to the calling flow after it has
// been dispatched and recorded: surface it as a *CriticalError, or keep
// going. The zero value is ActionExit, the library default.
type Action int

const (
	ActionExit Action = iota
	ActionContinue
)

var actionNames = map[Action]string{
	ActionExit:     "EXIT",
	ActionContinue: "CONTINUE",
}

var actionValues = map[string]Action{
	"EXIT":     ActionExit,
	"CONTINUE": ActionContinue,
}

// String returns the canonical upper-case name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ACTION(%d)", int(a))
}

// Valid reports whether a is one of the declared actions.
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// ParseAction resolves a case-insensitive action name.
func ParseAction(name string) (Action, error) {
	if a, ok := actionValues[strings.ToUpper(name)]; ok {
		return a, nil
	}
	return 0, &ConfigError{Reason: fmt.Sprintf("unknown action %q", name)}
}
