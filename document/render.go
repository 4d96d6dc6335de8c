package document

import (
	"math"
	"strconv"
	"strings"
)

func (Null) String() string { return "null" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (u Uint) String() string { return strconv.FormatUint(uint64(u), 10) }

func (f Float) String() string {
	v := float64(f)

	switch {
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	case math.IsNaN(v):
		return ".nan"
	}

	out := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}

	return out
}

func (s String) String() string { return string(s) }

func (s Sequence) String() string {
	var b strings.Builder

	writeSequence(&b, s)

	return b.String()
}

func (m *Mapping) String() string {
	var b strings.Builder

	writeMapping(&b, m)

	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch typed := v.(type) {
	case String:
		b.WriteString(quoteNested(string(typed)))
	case Sequence:
		writeSequence(b, typed)
	case *Mapping:
		writeMapping(b, typed)
	case nil:
		b.WriteString(Null{}.String())
	default:
		b.WriteString(v.String())
	}
}

func writeSequence(b *strings.Builder, s Sequence) {
	b.WriteByte('[')

	for i, item := range s {
		if i > 0 {
			b.WriteString(", ")
		}

		writeValue(b, item)
	}

	b.WriteByte(']')
}

func writeMapping(b *strings.Builder, m *Mapping) {
	b.WriteByte('{')

	for i, entry := range m.Entries() {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(quoteNested(entry.Key))
		b.WriteString(": ")
		writeValue(b, entry.Value)
	}

	b.WriteByte('}')
}

// quoteNested quotes strings that would be ambiguous inside a flow collection.
func quoteNested(s string) string {
	if s == "" || strings.TrimSpace(s) != s ||
		strings.ContainsAny(s, "{}[],\"\n") ||
		strings.Contains(s, ": ") || strings.Contains(s, " #") {
		return strconv.Quote(s)
	}

	return s
}
