package schema

import (
	"regexp"

	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/token"
)

var (
	identRe      = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	pascalRe     = regexp.MustCompile(`^[A-Z][a-zA-Z0-9_]*$`)
	upperSnakeRe = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)
)

// Definition is a named schema entry: struct, enum, or alias. All
// three share one namespace within a Schema.
type Definition interface {
	DefName() string
	DefPos() *token.Pos
}

// Field is a single struct member. A direct description overrides the
// field type's description.
type Field struct {
	Name        string
	Type        *Type
	Description string
	Pos         *token.Pos
}

func NewField(name string, typ *Type, desc string, pos *token.Pos) (*Field, error) {
	if !identRe.MatchString(name) {
		return nil, ir.Errf(ir.ErrSchema, pos, "invalid field name %q", name)
	}
	if typ == nil {
		return nil, ir.Errf(ir.ErrSchema, pos, "field %q has no type", name)
	}
	return &Field{Name: name, Type: typ, Description: desc, Pos: pos}, nil
}

// Describe returns the field's effective description.
func (f *Field) Describe() string {
	if f.Description != "" {
		return f.Description
	}
	return f.Type.Description
}

type StructDef struct {
	Name        string
	Fields      []*Field
	Description string
	Pos         *token.Pos

	byName map[string]*Field
}

func NewStructDef(name string, fields []*Field, desc string, pos *token.Pos) (*StructDef, error) {
	if !pascalRe.MatchString(name) {
		return nil, ir.Errf(ir.ErrSchema, pos, "struct name %q must be PascalCase", name)
	}
	d := &StructDef{Name: name, Fields: fields, Description: desc, Pos: pos,
		byName: make(map[string]*Field, len(fields))}
	for _, f := range fields {
		if _, dup := d.byName[f.Name]; dup {
			return nil, ir.Errf(ir.ErrSchema, f.Pos, "duplicate field %q in struct %q", f.Name, name)
		}
		d.byName[f.Name] = f
	}
	return d, nil
}

func (d *StructDef) DefName() string       { return d.Name }
func (d *StructDef) DefPos() *token.Pos    { return d.Pos }
func (d *StructDef) Field(name string) *Field {
	return d.byName[name]
}

// EnumValue is one enum member, optionally described.
type EnumValue struct {
	Name        string
	Description string
}

type EnumDef struct {
	Name        string
	Values      []EnumValue
	Description string
	Pos         *token.Pos

	members map[string]bool
}

func NewEnumDef(name string, values []EnumValue, desc string, pos *token.Pos) (*EnumDef, error) {
	if !pascalRe.MatchString(name) {
		return nil, ir.Errf(ir.ErrSchema, pos, "enum name %q must be PascalCase", name)
	}
	if len(values) == 0 {
		return nil, ir.Errf(ir.ErrSchema, pos, "enum %q must have at least one value", name)
	}
	d := &EnumDef{Name: name, Values: values, Description: desc, Pos: pos,
		members: make(map[string]bool, len(values))}
	for _, v := range values {
		if !upperSnakeRe.MatchString(v.Name) {
			return nil, ir.Errf(ir.ErrSchema, pos,
				"enum value %q in %q must be UPPER_SNAKE_CASE", v.Name, name)
		}
		if d.members[v.Name] {
			return nil, ir.Errf(ir.ErrSchema, pos, "duplicate enum value %q in %q", v.Name, name)
		}
		d.members[v.Name] = true
	}
	return d, nil
}

func (d *EnumDef) DefName() string    { return d.Name }
func (d *EnumDef) DefPos() *token.Pos { return d.Pos }

func (d *EnumDef) Has(member string) bool { return d.members[member] }

func (d *EnumDef) Members() []string {
	res := make([]string, len(d.Values))
	for i, v := range d.Values {
		res[i] = v.Name
	}
	return res
}

type AliasDef struct {
	Name        string
	Target      *Type
	Description string
	Pos         *token.Pos
}

func NewAliasDef(name string, target *Type, desc string, pos *token.Pos) (*AliasDef, error) {
	if !pascalRe.MatchString(name) {
		return nil, ir.Errf(ir.ErrSchema, pos, "type alias name %q must be PascalCase", name)
	}
	if target == nil {
		return nil, ir.Errf(ir.ErrSchema, pos, "type alias %q has no target", name)
	}
	return &AliasDef{Name: name, Target: target, Description: desc, Pos: pos}, nil
}

func (d *AliasDef) DefName() string    { return d.Name }
func (d *AliasDef) DefPos() *token.Pos { return d.Pos }

// ConstDef is a named constant. Constants live in their own
// namespace, separate from type definitions.
type ConstDef struct {
	Name         string
	Value        *ir.Value
	DeclaredType *Type
	Description  string
	Pos          *token.Pos
}

func NewConstDef(name string, value *ir.Value, declared *Type, pos *token.Pos) (*ConstDef, error) {
	if !upperSnakeRe.MatchString(name) {
		return nil, ir.Errf(ir.ErrSchema, pos, "constant name %q must be UPPER_SNAKE_CASE", name)
	}
	if value == nil {
		return nil, ir.Errf(ir.ErrSchema, pos, "constant %q has no value", name)
	}
	return &ConstDef{Name: name, Value: value, DeclaredType: declared, Pos: pos}, nil
}
