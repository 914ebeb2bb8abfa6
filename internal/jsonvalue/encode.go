package jsonvalue

import (
	"bytes"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Marshal returns the compact JSON encoding of v.
func Marshal(v Value) []byte {
	var buf bytes.Buffer
	encodeValue(&buf, v, "", "")
	return buf.Bytes()
}

// MarshalIndent returns the JSON encoding of v with one member or element
// per line, nested levels indented by indent. Empty arrays and objects stay
// on one line as [] and {}.
func MarshalIndent(v Value, indent string) []byte {
	var buf bytes.Buffer
	encodeValue(&buf, v, indent, "")
	return buf.Bytes()
}

// Pretty returns the two-space indented encoding of v as a string.
func Pretty(v Value) string {
	return string(MarshalIndent(v, "  "))
}

// Compact returns the compact encoding of v as a string.
func Compact(v Value) string {
	return string(Marshal(v))
}

func encodeValue(buf *bytes.Buffer, v Value, indent, prefix string) {
	switch t := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		if t == "" {
			buf.WriteString("0")
		} else {
			buf.WriteString(string(t))
		}
	case String:
		writeString(buf, string(t))
	case Array:
		if len(t.elems) == 0 {
			buf.WriteString("[]")
			return
		}
		inner := prefix + indent
		buf.WriteByte('[')
		for i, e := range t.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, inner)
			encodeValue(buf, e, indent, inner)
		}
		newline(buf, indent, prefix)
		buf.WriteByte(']')
	case Object:
		if len(t.members) == 0 {
			buf.WriteString("{}")
			return
		}
		inner := prefix + indent
		buf.WriteByte('{')
		for i, m := range t.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, inner)
			writeString(buf, m.Key)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			encodeValue(buf, m.Value, indent, inner)
		}
		newline(buf, indent, prefix)
		buf.WriteByte('}')
	}
}

func newline(buf *bytes.Buffer, indent, prefix string) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(prefix)
}

// writeString quotes s the way JSON.stringify does: only the quote, the
// backslash and control characters are escaped.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		b := s[i]
		if b >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				buf.WriteString(s[start:i])
				buf.WriteString("\ufffd")
				i += size
				start = i
				continue
			}
			i += size
			continue
		}
		if b >= 0x20 && b != '"' && b != '\\' {
			i++
			continue
		}
		buf.WriteString(s[start:i])
		switch b {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[b>>4])
			buf.WriteByte(hexDigits[b&0xF])
		}
		i++
		start = i
	}
	buf.WriteString(s[start:])
	buf.WriteByte('"')
}

// Quote returns s as a JSON string literal.
func Quote(s string) string {
	var buf bytes.Buffer
	writeString(&buf, s)
	return buf.String()
}
