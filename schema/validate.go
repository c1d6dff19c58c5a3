package schema

import (
	"strconv"
	"strings"

	"github.com/daxa-format/go-daxa/debug"
	"github.com/daxa-format/go-daxa/ir"
)

// DefaultMaxDepth bounds validation recursion unless overridden at
// validator construction.
const DefaultMaxDepth = 100

// RootPath marks the root of a validated value in error paths.
const RootPath = "<root>"

// Validator checks values against resolved types in one schema. The
// schema must have passed its integrity check; NewValidator re-runs
// it if necessary.
type Validator struct {
	schema       *Schema
	strictFields bool
	maxDepth     int
}

type ValidatorOpt func(*Validator)

// WithMaxDepth overrides the recursion ceiling.
func WithMaxDepth(n int) ValidatorOpt {
	return func(v *Validator) { v.maxDepth = n }
}

func NewValidator(s *Schema, strictFields bool, opts ...ValidatorOpt) (*Validator, error) {
	if !s.IntegrityChecked() {
		if err := s.ValidateIntegrity(); err != nil {
			return nil, ir.Errf(ir.ErrValidation, nil,
				"schema %q failed integrity check: %v", s.Name, err)
		}
	}
	v := &Validator{schema: s, strictFields: strictFields, maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(v)
	}
	return v, nil
}

// ValidateValue checks val against expected. path is used to qualify
// errors; pass "" for the root.
func (v *Validator) ValidateValue(val *ir.Value, expected *Type, path string) error {
	if path == "" {
		path = RootPath
	}
	return v.validate(val, expected, path, 0)
}

func (v *Validator) validate(val *ir.Value, expected *Type, path string, depth int) error {
	if depth > v.maxDepth {
		return ir.PathErrf(ir.ErrValidation, path, val.Pos,
			"max recursion depth %d exceeded", v.maxDepth)
	}
	resolved, err := expected.ResolveFully(v.schema)
	if err != nil {
		return ir.PathErrf(ir.ErrValidation, path, val.Pos, "invalid expected type: %v", err)
	}
	if debug.Validate() {
		debug.Logf("validate %s: %s against %s\n", path, val.Kind, resolved.String())
	}

	if val.Kind == ir.NullKind {
		if resolved.Optional {
			return nil
		}
		return ir.PathErrf(ir.ErrValidation, path, val.Pos,
			"null value but type %q is not optional", resolved.String())
	}

	expKind, err := resolved.InstanceKind(v.schema)
	if err != nil {
		return ir.PathErrf(ir.ErrValidation, path, val.Pos, "invalid expected type: %v", err)
	}

	switch {
	case expKind == ir.AnyKind:
		// any accepts every value; constraints below still apply to
		// the unwrapped payload.
	case val.Kind == ir.AnyKind:
		if inner, ok := val.Any.(*ir.Value); ok {
			return v.validate(inner, resolved, path, depth+1)
		}
		return ir.PathErrf(ir.ErrType, path, val.Pos,
			"opaque any value (%T) cannot satisfy type %q", val.Any, resolved.String())
	case expKind == ir.FloatKind && val.Kind == ir.IntKind:
		// implicit int -> float widening
	case expKind == ir.EnumInstanceKind && val.Kind == ir.StringKind:
		// a plain string is checked for enum membership below
	case !sameShape(expKind, val.Kind):
		return ir.PathErrf(ir.ErrType, path, val.Pos,
			"expected %s, got %s (value: %s)", expKind, val.Kind, val.Preview())
	}

	// Constraints apply to the unwrapped payload when the value is an
	// any wrapper.
	target, targetKind := val, val.Kind
	if val.Kind == ir.AnyKind {
		if inner, ok := val.Any.(*ir.Value); ok {
			target, targetKind = inner, inner.Kind
		}
	}
	for _, c := range resolved.Constraints {
		if err := c.Validate(target, targetKind, path, target.Pos); err != nil {
			return err
		}
	}

	switch expKind {
	case ir.ArrayKind:
		if resolved.Elem == nil {
			return ir.PathErrf(ir.ErrInternal, path, val.Pos,
				"array type %q has no element type", resolved.String())
		}
		for i, el := range target.Values {
			if err := v.validate(el, resolved.Elem, path+"."+strconv.Itoa(i), depth+1); err != nil {
				return err
			}
		}
	case ir.MapKind:
		if resolved.Val == nil {
			return ir.PathErrf(ir.ErrInternal, path, val.Pos,
				"map type %q has no value type", resolved.String())
		}
		for i, key := range target.Fields {
			if err := v.validate(target.Values[i], resolved.Val, path+"."+key, depth+1); err != nil {
				return err
			}
		}
	case ir.StructInstanceKind:
		return v.validateStruct(target, resolved, path, depth)
	case ir.EnumInstanceKind:
		return v.validateEnum(target, resolved, path)
	}
	// DiagramSource/MathSource are structurally opaque: the kind match
	// above is all that applies.
	return nil
}

// sameShape treats struct-instance and map values as one shape class:
// both are ordered string-keyed entry sets, and which tag a literal
// carries depends only on the type hint it was built under.
func sameShape(exp, got ir.Kind) bool {
	if exp == got {
		return true
	}
	objectish := func(k ir.Kind) bool {
		return k == ir.StructInstanceKind || k == ir.MapKind
	}
	return objectish(exp) && objectish(got)
}

func (v *Validator) validateStruct(val *ir.Value, resolved *Type, path string, depth int) error {
	if resolved.Name == "" {
		return ir.PathErrf(ir.ErrInternal, path, val.Pos, "struct type has no definition name")
	}
	def, ok := v.schema.StructDef(resolved.Name)
	if !ok {
		return ir.PathErrf(ir.ErrSchema, path, val.Pos,
			"struct definition %q not found", resolved.Name)
	}
	for _, f := range def.Fields {
		fv := val.Field(f.Name)
		if fv != nil {
			if err := v.validate(fv, f.Type, path+"."+f.Name, depth+1); err != nil {
				return err
			}
			continue
		}
		rft, err := f.Type.ResolveFully(v.schema)
		if err != nil {
			return ir.PathErrf(ir.ErrValidation, path, f.Pos, "invalid field type: %v", err)
		}
		if !rft.Optional && rft.Default == nil {
			return ir.PathErrf(ir.ErrValidation, path, val.Pos,
				"required field %q missing in struct %q", f.Name, def.Name)
		}
	}
	if v.strictFields {
		for _, key := range val.Fields {
			if def.Field(key) == nil {
				return ir.PathErrf(ir.ErrValidation, path, val.Pos,
					"extraneous field %q in struct %q", key, def.Name)
			}
		}
	}
	return nil
}

func (v *Validator) validateEnum(val *ir.Value, resolved *Type, path string) error {
	if resolved.Kind != ir.EnumDefKind {
		return ir.PathErrf(ir.ErrInternal, path, val.Pos,
			"enum value against non-enum type %q", resolved.String())
	}
	def, ok := v.schema.EnumDef(resolved.Name)
	if !ok {
		return ir.PathErrf(ir.ErrSchema, path, val.Pos,
			"enum definition %q not found", resolved.Name)
	}
	member := val.Str
	if !def.Has(member) {
		return ir.PathErrf(ir.ErrValidation, path, val.Pos,
			"%q is not a member of enum %q; allowed: %s",
			member, def.Name, strings.Join(def.Members(), ", "))
	}
	return nil
}

// ValidateConstant checks a constant's value against its declared
// type, if any.
func (v *Validator) ValidateConstant(c *ConstDef) error {
	if c.DeclaredType == nil {
		return nil
	}
	resolved, err := c.DeclaredType.ResolveFully(v.schema)
	if err != nil {
		return ir.PathErrf(ir.ErrValidation, "const "+c.Name, c.Pos,
			"invalid declared type: %v", err)
	}
	if err := v.ValidateValue(c.Value, resolved, "const "+c.Name); err != nil {
		return err
	}
	return nil
}

// validateFieldDefault materializes a field's default literal and
// checks it against the field's resolved type. A bad default is a
// schema authoring bug, so failures surface as schema errors.
func (v *Validator) validateFieldDefault(structName string, f *Field) error {
	rft, err := f.Type.ResolveFully(v.schema)
	if err != nil {
		return err
	}
	if rft.Default == nil {
		return nil
	}
	dv, err := ValueFromNative(rft.Default, rft, v.schema, f.Pos)
	if err != nil {
		return ir.Errf(ir.ErrSchema, f.Pos,
			"default for %s.%s is invalid: %v", structName, f.Name, err)
	}
	path := "struct " + structName + "." + f.Name + ".default"
	if err := v.ValidateValue(dv, rft, path); err != nil {
		return ir.Errf(ir.ErrSchema, f.Pos,
			"default for %s.%s is invalid: %v", structName, f.Name, err)
	}
	return nil
}

// DefaultValue materializes the default literal of a resolved type as
// a value, or nil when the type has no default.
func (v *Validator) DefaultValue(t *Type) (*ir.Value, error) {
	resolved, err := t.ResolveFully(v.schema)
	if err != nil {
		return nil, err
	}
	if resolved.Default == nil {
		return nil, nil
	}
	return ValueFromNative(resolved.Default, resolved, v.schema, resolved.Pos)
}
