package schema

import (
	"maps"
	"slices"

	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/token"
)

// ValueFromNative converts a generic Go value to an ir.Value under a
// type hint, consulting s for struct field and enum hints. The result
// carries the hint's instance kind; deeper validation (constraints,
// enum membership, required fields) is the Validator's job.
func ValueFromNative(native any, hint *Type, s *Schema, pos *token.Pos) (*ir.Value, error) {
	if hint == nil {
		return ir.FromNative(native, pos)
	}
	resolved, err := hint.ResolveFully(s)
	if err != nil {
		return nil, err
	}
	if native == nil {
		return ir.Null().At(pos), nil
	}
	kind, err := resolved.InstanceKind(s)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ir.ArrayKind:
		items, ok := native.([]any)
		if !ok {
			return nil, ir.Errf(ir.ErrType, pos, "expected array, got %T", native)
		}
		elems := make([]*ir.Value, len(items))
		for i, item := range items {
			ev, err := ValueFromNative(item, resolved.Elem, s, pos)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return ir.FromSlice(elems).At(pos), nil
	case ir.MapKind:
		entries, ok := native.(map[string]any)
		if !ok {
			return nil, ir.Errf(ir.ErrType, pos, "expected map, got %T", native)
		}
		res := &ir.Value{Kind: ir.MapKind, Pos: pos}
		for _, k := range slices.Sorted(maps.Keys(entries)) {
			ev, err := ValueFromNative(entries[k], resolved.Val, s, pos)
			if err != nil {
				return nil, err
			}
			if err := res.SetField(k, ev); err != nil {
				return nil, err
			}
		}
		return res, nil
	case ir.StructInstanceKind:
		entries, ok := native.(map[string]any)
		if !ok {
			return nil, ir.Errf(ir.ErrType, pos, "expected struct instance, got %T", native)
		}
		def, _ := s.StructDef(resolved.Name)
		res := &ir.Value{Kind: ir.StructInstanceKind, Pos: pos}
		for _, k := range slices.Sorted(maps.Keys(entries)) {
			var fieldHint *Type
			if def != nil {
				if f := def.Field(k); f != nil {
					fieldHint = f.Type
				}
			}
			// Unknown fields convert with inference; strict-field
			// checking happens in validation.
			ev, err := ValueFromNative(entries[k], fieldHint, s, pos)
			if err != nil {
				return nil, err
			}
			if err := res.SetField(k, ev); err != nil {
				return nil, err
			}
		}
		return res, nil
	default:
		return ir.FromNativeKind(native, kind, pos)
	}
}
