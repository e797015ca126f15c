package value

import (
	"bytes"
	"encoding/json"
	"strings"
)

// formatJSON renders any Value as compact JSON text. Used by Array/Object
// String() and by the to_string() builtin for non-string values.
func formatJSON(v Value) string {
	var b strings.Builder
	writeJSON(&b, v)
	return b.String()
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func writeJSON(b *strings.Builder, v Value) {
	switch vv := v.(type) {
	case nil:
		b.WriteString("null")
	case Null:
		b.WriteString("null")
	case Bool:
		b.WriteString(vv.String())
	case Number:
		b.WriteString(vv.String())
	case String:
		b.WriteString(quoteJSON(string(vv)))
	case Array:
		b.WriteByte('[')
		for i, el := range vv {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, el)
		}
		b.WriteByte(']')
	case Object:
		b.WriteByte('{')
		for i, k := range vv.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteJSON(k))
			b.WriteByte(':')
			el, _ := vv.Get(k)
			writeJSON(b, el)
		}
		b.WriteByte('}')
	default:
		b.WriteString(vv.String())
	}
}
