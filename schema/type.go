package schema

import (
	"sort"
	"strings"

	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/token"
)

// Type is a type reference or definition node in a schema. It is a
// plain value with no embedded schema reference: resolution threads
// the owning *Schema through explicitly. A Type is never mutated
// after construction; transformations clone.
type Type struct {
	Kind ir.Kind

	// Name holds the primitive keyword or, for AliasDefKind /
	// StructDefKind / EnumDefKind nodes, the referenced definition
	// name.
	Name string

	Elem *Type // ArrayKind element type
	Key  *Type // MapKind key type; resolved kind must be String
	Val  *Type // MapKind value type

	Optional    bool
	Constraints []Constraint // sorted by Attr, deduplicated
	Default     any          // native literal, nil if none
	Description string
	Pos         *token.Pos
}

// Prim returns a primitive (or Any/DiagramSource/MathSource) type.
func Prim(k ir.Kind) *Type {
	return &Type{Kind: k, Name: k.String()}
}

// Named returns an unresolved reference to a named definition.
func Named(name string) *Type {
	return &Type{Kind: ir.AliasDefKind, Name: name}
}

// NewArray builds an array type; elem is required.
func NewArray(elem *Type, pos *token.Pos) (*Type, error) {
	if elem == nil {
		return nil, ir.Errf(ir.ErrSchema, pos, "array type must have an element type")
	}
	return &Type{Kind: ir.ArrayKind, Elem: elem, Pos: pos}, nil
}

// NewMap builds a map type. Both key and value types are required and
// the key must be a plain string type.
func NewMap(key, val *Type, pos *token.Pos) (*Type, error) {
	if key == nil || val == nil {
		return nil, ir.Errf(ir.ErrSchema, pos, "map type must have key and value types")
	}
	if key.Kind != ir.StringKind {
		return nil, ir.Errf(ir.ErrSchema, key.Pos, "map keys must be string, got %s", key.String())
	}
	return &Type{Kind: ir.MapKind, Key: key, Val: val, Pos: pos}, nil
}

func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	res := *t
	res.Elem = t.Elem.Clone()
	res.Key = t.Key.Clone()
	res.Val = t.Val.Clone()
	res.Constraints = append([]Constraint(nil), t.Constraints...)
	res.Pos = t.Pos.Clone()
	return &res
}

// IsAliasRef reports whether t is an unresolved reference to a named
// definition.
func (t *Type) IsAliasRef() bool {
	return t.Kind == ir.AliasDefKind && t.Name != ""
}

// InstanceKind returns the kind that values of this type must carry,
// resolving named references against s first.
func (t *Type) InstanceKind(s *Schema) (ir.Kind, error) {
	r, err := t.ResolveFully(s)
	if err != nil {
		return 0, err
	}
	switch r.Kind {
	case ir.StructDefKind:
		return ir.StructInstanceKind, nil
	case ir.EnumDefKind:
		return ir.EnumInstanceKind, nil
	}
	if r.Kind.IsInstance() {
		return r.Kind, nil
	}
	return 0, ir.Errf(ir.ErrSchema, t.Pos,
		"cannot determine instance kind for unresolved %s type %q", r.Kind, r.Name)
}

// ResolveFully follows alias references until a structural type is
// reached, resolving child types along the way, and returns a new
// Type. Optionality, constraints, description, and default from an
// alias reference are merged onto the resolved base: the reference's
// modifiers win, the base's fill gaps. Cycles fail with a schema
// error.
func (t *Type) ResolveFully(s *Schema) (*Type, error) {
	return t.resolve(s, map[string]bool{})
}

func (t *Type) resolve(s *Schema, visited map[string]bool) (*Type, error) {
	if !t.IsAliasRef() {
		res := t.Clone()
		var err error
		if t.Elem != nil {
			if res.Elem, err = t.Elem.resolve(s, visited); err != nil {
				return nil, err
			}
		}
		if t.Key != nil {
			if res.Key, err = t.Key.resolve(s, visited); err != nil {
				return nil, err
			}
		}
		if t.Val != nil {
			if res.Val, err = t.Val.resolve(s, visited); err != nil {
				return nil, err
			}
		}
		if res.Kind == ir.MapKind && res.Key.Kind != ir.StringKind {
			return nil, ir.Errf(ir.ErrSchema, t.Pos,
				"map keys must resolve to string, got %s", res.Key.String())
		}
		return res, nil
	}
	if s == nil {
		return nil, ir.Errf(ir.ErrInternal, t.Pos, "resolving %q without a schema", t.Name)
	}
	def := s.Definition(t.Name)
	if def == nil {
		return nil, ir.Errf(ir.ErrSchema, t.Pos, "undefined type %q", t.Name)
	}
	switch d := def.(type) {
	case *AliasDef:
		if visited[t.Name] {
			return nil, ir.Errf(ir.ErrSchema, t.Pos, "alias cycle through %q", t.Name)
		}
		visited[t.Name] = true
		base, err := d.Target.resolve(s, visited)
		if err != nil {
			return nil, err
		}
		delete(visited, t.Name)
		return t.mergeOnto(base), nil
	case *StructDef:
		res := t.Clone()
		res.Kind = ir.StructDefKind
		return res, nil
	case *EnumDef:
		res := t.Clone()
		res.Kind = ir.EnumDefKind
		return res, nil
	}
	return nil, ir.Errf(ir.ErrInternal, t.Pos, "unknown definition kind for %q", t.Name)
}

// mergeOnto layers the reference t's modifiers onto the resolved base
// type.
func (t *Type) mergeOnto(base *Type) *Type {
	res := base.Clone()
	res.Optional = t.Optional || base.Optional
	res.Constraints = normalizeConstraints(append(append([]Constraint(nil), base.Constraints...), t.Constraints...))
	if t.Default != nil {
		res.Default = t.Default
	}
	if t.Description != "" {
		res.Description = t.Description
	}
	if t.Pos != nil {
		res.Pos = t.Pos.Clone()
	}
	return res
}

// normalizeConstraints sorts by attribute text and deduplicates,
// keeping the later (reference-side) entry for equal attributes.
func normalizeConstraints(cs []Constraint) []Constraint {
	if len(cs) == 0 {
		return nil
	}
	byAttr := map[string]Constraint{}
	for _, c := range cs {
		byAttr[c.Attr()] = c
	}
	res := make([]Constraint, 0, len(byAttr))
	for _, c := range byAttr {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Attr() < res[j].Attr() })
	return res
}

// String renders the canonical textual form of the type: `Name`,
// `[Elem]`, `map[Key,Val]`, a trailing `?` for optional, then
// attribute annotations in stable sorted order.
func (t *Type) String() string {
	var b strings.Builder
	switch t.Kind {
	case ir.ArrayKind:
		b.WriteByte('[')
		if t.Elem != nil {
			b.WriteString(t.Elem.String())
		}
		b.WriteByte(']')
	case ir.MapKind:
		b.WriteString("map[")
		if t.Key != nil {
			b.WriteString(t.Key.String())
		}
		b.WriteByte(',')
		if t.Val != nil {
			b.WriteString(t.Val.String())
		}
		b.WriteByte(']')
	default:
		if t.Name != "" {
			b.WriteString(t.Name)
		} else {
			b.WriteString(t.Kind.String())
		}
	}
	if t.Optional {
		b.WriteByte('?')
	}
	for _, c := range t.Constraints {
		b.WriteByte(' ')
		b.WriteString(c.Attr())
	}
	if t.Default != nil {
		b.WriteString(" @default(")
		b.WriteString(defaultLiteral(t.Default))
		b.WriteByte(')')
	}
	if t.Description != "" {
		b.WriteString(" @desc(")
		b.WriteString(token.Quote(t.Description))
		b.WriteByte(')')
	}
	return b.String()
}

func defaultLiteral(v any) string {
	dv, err := ir.FromNative(v, nil)
	if err != nil {
		return "null"
	}
	return dv.LiteralText()
}
