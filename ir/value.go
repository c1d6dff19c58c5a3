package ir

import (
	"fmt"
	"time"

	"github.com/daxa-format/go-daxa/token"
	"github.com/google/uuid"
)

// Value is the runtime representation of a unit of Daxa data. One
// struct serves every kind; the payload field in use is determined by
// Kind:
//
//	Bool, Int, Float, Bytes, Time, UUID  primitive payloads
//	Str       StringKind text, EnumInstanceKind member name, and the
//	          raw source of DiagramSourceKind/MathSourceKind
//	Fields/Values  StructInstanceKind and MapKind entries, parallel
//	          slices preserving insertion order with unique keys
//	Values    ArrayKind elements (Fields nil)
//	Any       AnyKind payload: either a wrapped *Value or an opaque
//	          Go value
//
// A Value is immutable once constructed; transformations clone.
type Value struct {
	Kind Kind
	Pos  *token.Pos

	Bool  bool
	Int   int64
	Float float64
	Str   string
	Bytes []byte
	Time  time.Time
	UUID  uuid.UUID

	Fields []string
	Values []*Value

	Any any
}

func Null() *Value                 { return &Value{Kind: NullKind} }
func FromBool(v bool) *Value       { return &Value{Kind: BoolKind, Bool: v} }
func FromInt(v int64) *Value       { return &Value{Kind: IntKind, Int: v} }
func FromFloat(v float64) *Value   { return &Value{Kind: FloatKind, Float: v} }
func FromString(v string) *Value   { return &Value{Kind: StringKind, Str: v} }
func FromBytes(v []byte) *Value    { return &Value{Kind: BytesKind, Bytes: v} }
func FromTime(v time.Time) *Value  { return &Value{Kind: DatetimeKind, Time: v} }
func FromUUID(v uuid.UUID) *Value  { return &Value{Kind: UUIDKind, UUID: v} }
func FromEnum(member string) *Value {
	return &Value{Kind: EnumInstanceKind, Str: member}
}
func FromDiagramSource(src string) *Value {
	return &Value{Kind: DiagramSourceKind, Str: src}
}
func FromMathSource(src string) *Value {
	return &Value{Kind: MathSourceKind, Str: src}
}
func FromAny(v any) *Value { return &Value{Kind: AnyKind, Any: v} }

// FromSlice builds an array value over elems.
func FromSlice(elems []*Value) *Value {
	return &Value{Kind: ArrayKind, Values: elems}
}

type KeyVal struct {
	Key string
	Val *Value
}

// FromKeyVals builds a struct instance preserving the given entry
// order. Duplicate keys are rejected.
func FromKeyVals(kvs []KeyVal) (*Value, error) {
	res := &Value{Kind: StructInstanceKind}
	for _, kv := range kvs {
		if err := res.SetField(kv.Key, kv.Val); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (v *Value) At(pos *token.Pos) *Value {
	v.Pos = pos
	return v
}

// Field returns the entry value for key, or nil.
func (v *Value) Field(key string) *Value {
	for i, f := range v.Fields {
		if f == key {
			return v.Values[i]
		}
	}
	return nil
}

// SetField appends an entry; used only while a struct or map value is
// being built.
func (v *Value) SetField(key string, val *Value) error {
	if v.Kind != StructInstanceKind && v.Kind != MapKind {
		return Errf(ErrInternal, v.Pos, "SetField on %s value", v.Kind)
	}
	if v.Field(key) != nil {
		return Errf(ErrName, val.pos(), "duplicate key %q", key)
	}
	v.Fields = append(v.Fields, key)
	v.Values = append(v.Values, val)
	return nil
}

func (v *Value) pos() *token.Pos {
	if v == nil {
		return nil
	}
	return v.Pos
}

func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	res := *v
	res.Pos = v.Pos.Clone()
	if v.Bytes != nil {
		res.Bytes = append([]byte(nil), v.Bytes...)
	}
	if v.Fields != nil {
		res.Fields = append([]string(nil), v.Fields...)
	}
	if v.Values != nil {
		res.Values = make([]*Value, len(v.Values))
		for i, vv := range v.Values {
			res.Values[i] = vv.Clone()
		}
	}
	if inner, ok := v.Any.(*Value); ok {
		res.Any = inner.Clone()
	}
	return &res
}

// Visit walks the value tree pre- and post-order, diving into children
// when f returns true on the pre-order call.
func (v *Value) Visit(f func(v *Value, post bool) (bool, error)) error {
	dive, err := f(v, false)
	if err != nil {
		return err
	}
	if dive {
		for _, vv := range v.Values {
			if err := vv.Visit(f); err != nil {
				return err
			}
		}
		if inner, ok := v.Any.(*Value); ok {
			if err := inner.Visit(f); err != nil {
				return err
			}
		}
	}
	_, err = f(v, true)
	return err
}

// Preview renders a short (≤50 char) description of the payload for
// error messages.
func (v *Value) Preview() string {
	var s string
	switch v.Kind {
	case NullKind:
		s = "null"
	case BoolKind:
		s = fmt.Sprintf("%t", v.Bool)
	case IntKind:
		s = fmt.Sprintf("%d", v.Int)
	case FloatKind:
		s = fmt.Sprintf("%g", v.Float)
	case StringKind, EnumInstanceKind, DiagramSourceKind, MathSourceKind:
		s = v.Str
	case BytesKind:
		s = fmt.Sprintf("0x%x", v.Bytes)
	case DatetimeKind:
		s = v.Time.Format(time.RFC3339)
	case UUIDKind:
		s = v.UUID.String()
	case ArrayKind:
		s = fmt.Sprintf("[%d elements]", len(v.Values))
	case StructInstanceKind, MapKind:
		s = fmt.Sprintf("{%d entries}", len(v.Fields))
	case AnyKind:
		if inner, ok := v.Any.(*Value); ok {
			return inner.Preview()
		}
		s = fmt.Sprintf("%v", v.Any)
	default:
		s = fmt.Sprintf("<%s>", v.Kind)
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}
