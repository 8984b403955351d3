package xjournal

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Hand-rolled JSON encoding for the extras object appended by layouts and by
// Event.MarshalJSON. encoding/json would force the fields into a map and
// randomize their order; events promise declaration order, so the object is
// built directly.

const hexDigits = "0123456789abcdef"

// appendFieldsJSON writes fields as one JSON object in declaration order.
func appendFieldsJSON(b *strings.Builder, fields []Field) {
	b.WriteByte('{')
	for i := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		appendJSONString(b, fields[i].K)
		b.WriteByte(':')
		appendJSONValue(b, &fields[i])
	}
	b.WriteByte('}')
}

func appendJSONValue(b *strings.Builder, f *Field) {
	switch f.Kind {
	case KindString:
		appendJSONString(b, f.Str)
	case KindInt64:
		b.WriteString(strconv.FormatInt(f.Int64, 10))
	case KindFloat64:
		appendJSONFloat(b, f.Float64)
	case KindTime:
		appendJSONString(b, f.Time.UTC().Format(timeFieldLayout))
	case KindThunk:
		appendJSONString(b, f.Thunk())
	default:
		b.WriteString("null")
	}
}

// timeFieldLayout renders instant-valued fields inside the extras object.
const timeFieldLayout = "2006-01-02T15:04:05.999999999Z07:00"

// appendJSONFloat writes v as a JSON number. JSON has no NaN or infinities;
// those become null, matching what a tolerant consumer expects.
func appendJSONFloat(b *strings.Builder, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		b.WriteString("null")
		return
	}
	b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

// appendJSONString writes s as a quoted JSON string. Clean runs are copied
// in one shot; quotes, backslashes and control characters are escaped, and
// invalid UTF-8 is replaced with U+FFFD.
func appendJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			b.WriteString(s[start:i])
			switch c {
			case '"':
				b.WriteString(`\"`)
			case '\\':
				b.WriteString(`\\`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString(s[start:i])
			b.WriteString(`�`)
			i++
			start = i
			continue
		}
		i += size
	}
	b.WriteString(s[start:])
	b.WriteByte('"')
}
