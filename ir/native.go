package ir

import (
	"maps"
	"slices"
	"time"

	"github.com/daxa-format/go-daxa/token"
	"github.com/google/uuid"
)

// FromNative converts a generic Go value (the JSON-like shapes that
// decoders produce) to a Value, inferring the kind from the Go type.
// Unrecognized Go types become opaque Any values.
func FromNative(native any, pos *token.Pos) (*Value, error) {
	switch x := native.(type) {
	case nil:
		return Null().At(pos), nil
	case *Value:
		return x, nil
	case bool:
		return FromBool(x).At(pos), nil
	case int:
		return FromInt(int64(x)).At(pos), nil
	case int32:
		return FromInt(int64(x)).At(pos), nil
	case int64:
		return FromInt(x).At(pos), nil
	case float32:
		return FromFloat(float64(x)).At(pos), nil
	case float64:
		return FromFloat(x).At(pos), nil
	case string:
		return FromString(x).At(pos), nil
	case []byte:
		return FromBytes(x).At(pos), nil
	case time.Time:
		return FromTime(x).At(pos), nil
	case uuid.UUID:
		return FromUUID(x).At(pos), nil
	case []any:
		elems := make([]*Value, len(x))
		for i, e := range x {
			v, err := FromNative(e, pos)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return FromSlice(elems).At(pos), nil
	case map[string]any:
		// Go map order is unstable; sort keys for determinism.
		res := &Value{Kind: StructInstanceKind, Pos: pos}
		for _, k := range slices.Sorted(maps.Keys(x)) {
			v, err := FromNative(x[k], pos)
			if err != nil {
				return nil, err
			}
			if err := res.SetField(k, v); err != nil {
				return nil, err
			}
		}
		return res, nil
	default:
		return FromAny(x).At(pos), nil
	}
}

// FromNativeKind converts a Go value to a Value of the hinted kind,
// coercing the textual forms Daxa documents use for datetime, uuid,
// and enum members. Int is accepted where Float is hinted.
func FromNativeKind(native any, hint Kind, pos *token.Pos) (*Value, error) {
	switch hint {
	case NullKind:
		if native != nil {
			return nil, Errf(ErrType, pos, "expected null, got %T", native)
		}
		return Null().At(pos), nil
	case BoolKind:
		if b, ok := native.(bool); ok {
			return FromBool(b).At(pos), nil
		}
	case IntKind:
		switch n := native.(type) {
		case int:
			return FromInt(int64(n)).At(pos), nil
		case int32:
			return FromInt(int64(n)).At(pos), nil
		case int64:
			return FromInt(n).At(pos), nil
		}
	case FloatKind:
		switch n := native.(type) {
		case float32:
			return FromFloat(float64(n)).At(pos), nil
		case float64:
			return FromFloat(n).At(pos), nil
		case int:
			return FromFloat(float64(n)).At(pos), nil
		case int64:
			return FromFloat(float64(n)).At(pos), nil
		}
	case StringKind:
		if s, ok := native.(string); ok {
			return FromString(s).At(pos), nil
		}
	case BytesKind:
		if b, ok := native.([]byte); ok {
			return FromBytes(b).At(pos), nil
		}
	case DatetimeKind:
		switch t := native.(type) {
		case time.Time:
			return FromTime(t).At(pos), nil
		case string:
			tt, err := time.Parse(time.RFC3339, t)
			if err != nil {
				return nil, Errf(ErrParse, pos, "bad datetime literal %q: %v", t, err)
			}
			return FromTime(tt).At(pos), nil
		}
	case UUIDKind:
		switch u := native.(type) {
		case uuid.UUID:
			return FromUUID(u).At(pos), nil
		case string:
			uu, err := uuid.Parse(u)
			if err != nil {
				return nil, Errf(ErrParse, pos, "bad uuid literal %q: %v", u, err)
			}
			return FromUUID(uu).At(pos), nil
		}
	case EnumInstanceKind:
		if s, ok := native.(string); ok {
			return FromEnum(s).At(pos), nil
		}
	case DiagramSourceKind:
		if s, ok := native.(string); ok {
			return FromDiagramSource(s).At(pos), nil
		}
	case MathSourceKind:
		if s, ok := native.(string); ok {
			return FromMathSource(s).At(pos), nil
		}
	case AnyKind:
		v, err := FromNative(native, pos)
		if err != nil {
			return nil, err
		}
		return FromAny(v).At(pos), nil
	case ArrayKind, StructInstanceKind, MapKind:
		v, err := FromNative(native, pos)
		if err != nil {
			return nil, err
		}
		if hint == MapKind && v.Kind == StructInstanceKind {
			v.Kind = MapKind
		}
		if v.Kind != hint {
			return nil, Errf(ErrType, pos, "expected %s, got %T", hint, native)
		}
		return v, nil
	default:
		return nil, Errf(ErrInternal, pos, "kind %s cannot tag a value", hint)
	}
	return nil, Errf(ErrType, pos, "cannot represent %T as %s", native, hint)
}

// ToNative recursively converts the value to generic Go shapes:
// primitives as themselves, enum members and diagram/math source as
// strings, arrays as []any, struct instances and maps as
// map[string]any (insertion order is lost), Any unwrapped.
func (v *Value) ToNative() any {
	switch v.Kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.Bool
	case IntKind:
		return v.Int
	case FloatKind:
		return v.Float
	case StringKind, EnumInstanceKind, DiagramSourceKind, MathSourceKind:
		return v.Str
	case BytesKind:
		return v.Bytes
	case DatetimeKind:
		return v.Time
	case UUIDKind:
		return v.UUID
	case ArrayKind:
		res := make([]any, len(v.Values))
		for i, e := range v.Values {
			res[i] = e.ToNative()
		}
		return res
	case StructInstanceKind, MapKind:
		res := make(map[string]any, len(v.Fields))
		for i, f := range v.Fields {
			res[f] = v.Values[i].ToNative()
		}
		return res
	case AnyKind:
		if inner, ok := v.Any.(*Value); ok {
			return inner.ToNative()
		}
		return v.Any
	}
	return nil
}
