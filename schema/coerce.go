package schema

import (
	"time"

	"github.com/daxa-format/go-daxa/ir"
	"github.com/google/uuid"
)

// Coerce re-tags a freshly parsed literal value against a type hint.
// Literal syntax underdetermines several kinds: a quoted string may be
// a datetime or uuid, a bare UPPER_SNAKE word may be an enum member,
// an object literal may be a map, and an int may stand in for a float.
// Coerce resolves those against the hint and returns a value tagged
// the way the Validator expects. Shapes that cannot match the hint are
// returned unchanged so validation reports them with full context.
func Coerce(v *ir.Value, hint *Type, s *Schema) (*ir.Value, error) {
	if v == nil || hint == nil || v.Kind == ir.NullKind {
		return v, nil
	}
	resolved, err := hint.ResolveFully(s)
	if err != nil {
		return nil, err
	}
	kind, err := resolved.InstanceKind(s)
	if err != nil {
		return nil, err
	}
	switch {
	case kind == ir.DatetimeKind && v.Kind == ir.StringKind:
		t, err := time.Parse(time.RFC3339, v.Str)
		if err != nil {
			return nil, ir.Errf(ir.ErrParse, v.Pos, "bad datetime literal %q: %v", v.Str, err)
		}
		return ir.FromTime(t).At(v.Pos), nil
	case kind == ir.UUIDKind && v.Kind == ir.StringKind:
		u, err := uuid.Parse(v.Str)
		if err != nil {
			return nil, ir.Errf(ir.ErrParse, v.Pos, "bad uuid literal %q: %v", v.Str, err)
		}
		return ir.FromUUID(u).At(v.Pos), nil
	case kind == ir.EnumInstanceKind && (v.Kind == ir.StringKind || v.Kind == ir.EnumInstanceKind):
		return ir.FromEnum(v.Str).At(v.Pos), nil
	case kind == ir.ArrayKind && v.Kind == ir.ArrayKind:
		elems := make([]*ir.Value, len(v.Values))
		for i, el := range v.Values {
			ce, err := Coerce(el, resolved.Elem, s)
			if err != nil {
				return nil, err
			}
			elems[i] = ce
		}
		return ir.FromSlice(elems).At(v.Pos), nil
	case kind == ir.MapKind && (v.Kind == ir.StructInstanceKind || v.Kind == ir.MapKind):
		res := &ir.Value{Kind: ir.MapKind, Pos: v.Pos}
		for i, key := range v.Fields {
			cv, err := Coerce(v.Values[i], resolved.Val, s)
			if err != nil {
				return nil, err
			}
			if err := res.SetField(key, cv); err != nil {
				return nil, err
			}
		}
		return res, nil
	case kind == ir.StructInstanceKind && (v.Kind == ir.StructInstanceKind || v.Kind == ir.MapKind):
		def, _ := s.StructDef(resolved.Name)
		res := &ir.Value{Kind: ir.StructInstanceKind, Pos: v.Pos}
		for i, key := range v.Fields {
			var fieldHint *Type
			if def != nil {
				if f := def.Field(key); f != nil {
					fieldHint = f.Type
				}
			}
			cv, err := Coerce(v.Values[i], fieldHint, s)
			if err != nil {
				return nil, err
			}
			if err := res.SetField(key, cv); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
	return v, nil
}
