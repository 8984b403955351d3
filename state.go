package xjournal

// State is a detached snapshot of a router: configuration labels, counters
// and a copy of the critical history. The JSON shape is stable and meant for
// external persistence or analysis; events marshal with their fields in
// declaration order.
type State struct {
	Level          string   `json:"level"`
	Action         string   `json:"action"`
	ErrorCount     int      `json:"errorCount"`
	WarningCount   int      `json:"warningCount"`
	CriticalEvents []*Event `json:"criticalEvents"`
}

// HasMessages reports whether the snapshot holds any critical event.
func (s State) HasMessages() bool {
	return s.ErrorCount+s.WarningCount > 0
}
