package encode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/daxa-format/go-daxa/format"
	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/token"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	compact       bool

	format format.Format

	colorKind ir.Kind
	Color     func(ir.Kind, ColorAttr, string) string
}

// Encode writes v to w in the state's format. Daxa and JSON share one
// walker; YAML goes through the yaml encoder on an order-preserving
// native form. Output ends with a newline.
func Encode(v *ir.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsYAML() {
		return encodeYAML(v, w)
	}
	if err := encode(v, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func writeNL(w io.Writer, es *EncState) error {
	if es.compact {
		return writeString(w, " ")
	}
	return writeString(w, "\n"+strings.Repeat(strings.Repeat(" ", es.indent), es.depth))
}

func applyColor(es *EncState, kind ir.Kind, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(kind, attr, v)
}

func encode(v *ir.Value, w io.Writer, es *EncState) error {
	es.colorKind = v.Kind
	switch v.Kind {
	case ir.NullKind:
		return writeString(w, applyColor(es, ir.NullKind, ValueColor, "null"))
	case ir.BoolKind:
		return writeString(w, applyColor(es, ir.BoolKind, ValueColor, strconv.FormatBool(v.Bool)))
	case ir.IntKind:
		return writeString(w, applyColor(es, ir.IntKind, ValueColor, strconv.FormatInt(v.Int, 10)))
	case ir.FloatKind:
		return writeString(w, applyColor(es, ir.FloatKind, ValueColor, ir.FormatFloat(v.Float)))
	case ir.StringKind:
		return writeString(w, applyColor(es, ir.StringKind, ValueColor, token.Quote(v.Str)))
	case ir.BytesKind:
		return encodeBytes(v, w, es)
	case ir.DatetimeKind:
		return writeString(w, applyColor(es, ir.DatetimeKind, ValueColor,
			token.Quote(v.Time.Format(time.RFC3339))))
	case ir.UUIDKind:
		return writeString(w, applyColor(es, ir.UUIDKind, ValueColor, token.Quote(v.UUID.String())))
	case ir.EnumInstanceKind:
		return encodeEnum(v, w, es)
	case ir.DiagramSourceKind:
		return encodeSource(v, w, es, "dxd")
	case ir.MathSourceKind:
		return encodeSource(v, w, es, "math")
	case ir.ArrayKind:
		return encodeArray(v, w, es)
	case ir.StructInstanceKind, ir.MapKind:
		return encodeObject(v, w, es)
	case ir.AnyKind:
		if inner, ok := v.Any.(*ir.Value); ok {
			return encode(inner, w, es)
		}
		return fmt.Errorf("%w: opaque any payload %T", ErrEncoding, v.Any)
	default:
		return fmt.Errorf("%w: cannot encode %s value", ErrEncoding, v.Kind)
	}
}

// encodeBytes writes the 0xHEX form; JSON has no bytes literal, so
// there it becomes a string holding the same text.
func encodeBytes(v *ir.Value, w io.Writer, es *EncState) error {
	text := fmt.Sprintf("0x%x", v.Bytes)
	if es.format.IsJSON() {
		text = token.Quote(text)
	}
	return writeString(w, applyColor(es, ir.BytesKind, ValueColor, text))
}

// Enum members are bare words in Daxa and plain strings in JSON.
func encodeEnum(v *ir.Value, w io.Writer, es *EncState) error {
	text := v.Str
	if es.format.IsJSON() {
		text = token.Quote(text)
	}
	return writeString(w, applyColor(es, ir.EnumInstanceKind, ValueColor, text))
}

func encodeSource(v *ir.Value, w io.Writer, es *EncState, keyword string) error {
	if es.format.IsJSON() {
		return writeString(w, applyColor(es, v.Kind, ValueColor, token.Quote(v.Str)))
	}
	kw := applyColor(es, v.Kind, TagColor, keyword)
	body := applyColor(es, v.Kind, LiteralMultiColor, v.Str)
	return writeString(w, kw+" { "+body+" }")
}

func encodeArray(v *ir.Value, w io.Writer, es *EncState) error {
	open := applyColor(es, ir.ArrayKind, SepColor, "[")
	if err := writeString(w, open); err != nil {
		return err
	}
	if len(v.Values) == 0 {
		return writeString(w, applyColor(es, ir.ArrayKind, SepColor, "]"))
	}
	es.depth++
	for i, el := range v.Values {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(el, w, es); err != nil {
			return err
		}
		if i < len(v.Values)-1 {
			if err := writeString(w, applyColor(es, ir.ArrayKind, SepColor, ",")); err != nil {
				return err
			}
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, applyColor(es, ir.ArrayKind, SepColor, "]"))
}

func encodeObject(v *ir.Value, w io.Writer, es *EncState) error {
	kind := v.Kind
	open := applyColor(es, kind, SepColor, "{")
	if err := writeString(w, open); err != nil {
		return err
	}
	if len(v.Fields) == 0 {
		return writeString(w, applyColor(es, kind, SepColor, "}"))
	}
	es.depth++
	for i, key := range v.Fields {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(w, key, kind, es); err != nil {
			return err
		}
		if err := encode(v.Values[i], w, es); err != nil {
			return err
		}
		if i < len(v.Fields)-1 {
			if err := writeString(w, applyColor(es, kind, SepColor, ",")); err != nil {
				return err
			}
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, applyColor(es, kind, SepColor, "}"))
}

func writeField(w io.Writer, f string, kind ir.Kind, es *EncState) error {
	if es.format.IsJSON() || token.NeedsQuote(f) {
		f = token.Quote(f)
	}
	f = applyColor(es, kind, FieldColor, f)
	sep := applyColor(es, kind, SepColor, ":")
	return writeString(w, f+sep+" ")
}
