package xjournal

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the concrete type stored in a Field.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt64
	KindFloat64
	KindTime
	KindThunk
)

// Field is one typed key/value pair attached to an Event. The value domain
// is deliberately small: strings, numbers, instants, and thunks. A thunk is
// a zero-argument string producer evaluated when the event is rendered, so
// expensive detail is paid for only when a layout actually runs.
//
// No reflection, no interface{} boxing: exactly one member is meaningful per
// Kind.
type Field struct {
	K       string
	Kind    Kind
	Str     string
	Int64   int64
	Float64 float64
	Time    time.Time
	Thunk   func() string
}

// Str returns a string field.
func Str(k, v string) Field { return Field{K: k, Kind: KindString, Str: v} }

// Int returns an int field (stored as int64).
func Int(k string, v int) Field { return Field{K: k, Kind: KindInt64, Int64: int64(v)} }

// Int64 returns an int64 field.
func Int64(k string, v int64) Field { return Field{K: k, Kind: KindInt64, Int64: v} }

// Float64 returns a float64 field.
func Float64(k string, v float64) Field { return Field{K: k, Kind: KindFloat64, Float64: v} }

// Time returns an instant field.
func Time(k string, v time.Time) Field { return Field{K: k, Kind: KindTime, Time: v} }

// Thunk returns a lazily evaluated string field. fn runs once per render.
func Thunk(k string, fn func() string) Field { return Field{K: k, Kind: KindThunk, Thunk: fn} }

// reservedKeys are claimed by the event envelope and the canonical layouts;
// extra fields may not shadow them.
var reservedKeys = map[string]struct{}{
	"type":      {},
	"level":     {},
	"message":   {},
	"timestamp": {},
}

// ReservedKey reports whether k is claimed by the event envelope.
func ReservedKey(k string) bool {
	_, ok := reservedKeys[k]
	return ok
}

func (f Field) validate() error {
	if f.K == "" {
		return &ValidationError{Reason: "field key must be a non-empty string"}
	}
	if ReservedKey(f.K) {
		return &ValidationError{Reason: fmt.Sprintf("field key %q is reserved", f.K)}
	}
	switch f.Kind {
	case KindString, KindInt64, KindFloat64, KindTime:
		return nil
	case KindThunk:
		if f.Thunk == nil {
			return &ValidationError{Reason: fmt.Sprintf("field %q has a nil thunk", f.K)}
		}
		return nil
	default:
		return &ValidationError{Reason: fmt.Sprintf("field %q has unknown kind %d", f.K, f.Kind)}
	}
}

// text renders the field's value for diagnostic output. Layout JSON encoding
// lives in json.go.
func (f Field) text() string {
	switch f.Kind {
	case KindString:
		return f.Str
	case KindInt64:
		return strconv.FormatInt(f.Int64, 10)
	case KindFloat64:
		return strconv.FormatFloat(f.Float64, 'g', -1, 64)
	case KindTime:
		return f.Time.UTC().Format(time.RFC3339Nano)
	case KindThunk:
		return f.Thunk()
	default:
		return ""
	}
}
