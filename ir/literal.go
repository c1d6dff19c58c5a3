package ir

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/daxa-format/go-daxa/token"
)

// LiteralText renders the value in Daxa's compact textual literal
// syntax: the form data blocks and @default attributes use. Datetime
// and uuid values render as quoted strings; bytes as 0xHEX; enum
// members bare.
func (v *Value) LiteralText() string {
	var b strings.Builder
	v.writeLiteral(&b)
	return b.String()
}

func (v *Value) writeLiteral(b *strings.Builder) {
	switch v.Kind {
	case NullKind:
		b.WriteString("null")
	case BoolKind:
		b.WriteString(strconv.FormatBool(v.Bool))
	case IntKind:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case FloatKind:
		b.WriteString(FormatFloat(v.Float))
	case StringKind:
		b.WriteString(token.Quote(v.Str))
	case BytesKind:
		fmt.Fprintf(b, "0x%x", v.Bytes)
	case DatetimeKind:
		b.WriteString(token.Quote(v.Time.Format(time.RFC3339)))
	case UUIDKind:
		b.WriteString(token.Quote(v.UUID.String()))
	case EnumInstanceKind:
		b.WriteString(v.Str)
	case DiagramSourceKind:
		b.WriteString("dxd { ")
		b.WriteString(v.Str)
		b.WriteString(" }")
	case MathSourceKind:
		b.WriteString("math { ")
		b.WriteString(v.Str)
		b.WriteString(" }")
	case ArrayKind:
		b.WriteByte('[')
		for i, e := range v.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			e.writeLiteral(b)
		}
		b.WriteByte(']')
	case StructInstanceKind, MapKind:
		b.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			if token.NeedsQuote(f) {
				b.WriteString(token.Quote(f))
			} else {
				b.WriteString(f)
			}
			b.WriteString(": ")
			v.Values[i].writeLiteral(b)
		}
		b.WriteByte('}')
	case AnyKind:
		if inner, ok := v.Any.(*Value); ok {
			inner.writeLiteral(b)
			return
		}
		fmt.Fprintf(b, "%v", v.Any)
	}
}

// FormatFloat renders f so that it reparses as a float: whole numbers
// keep a trailing ".0".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && s != "NaN" {
		s += ".0"
	}
	return s
}
