package schema

import (
	"sync"

	"github.com/daxa-format/go-daxa/debug"
	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/token"
)

// Schema is the named-definition registry for one document or parse
// session. It is populated incrementally while definitions are
// parsed, then frozen by ValidateIntegrity; after that it is
// read-only and safe for concurrent validation.
type Schema struct {
	Name string
	Path string

	mu          sync.RWMutex
	defs        map[string]Definition
	defOrder    []string
	consts      map[string]*ConstDef
	constOrder  []string
	typeCache   map[string]*Type
	integrityOK bool
}

func New(name string) *Schema {
	return &Schema{
		Name:      name,
		defs:      map[string]Definition{},
		consts:    map[string]*ConstDef{},
		typeCache: map[string]*Type{},
	}
}

// AddDefinition registers a struct, enum, or alias definition. The
// three share one namespace; an exact-name collision is a name error.
// A schema that has passed its integrity check is frozen.
func (s *Schema) AddDefinition(d Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.integrityOK {
		return ir.Errf(ir.ErrSchema, d.DefPos(), "schema %q is frozen after integrity validation", s.Name)
	}
	name := d.DefName()
	if _, dup := s.defs[name]; dup {
		return ir.Errf(ir.ErrName, d.DefPos(), "duplicate definition %q", name)
	}
	s.defs[name] = d
	s.defOrder = append(s.defOrder, name)
	return nil
}

// AddConstant registers a constant in the constant namespace.
func (s *Schema) AddConstant(c *ConstDef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.integrityOK {
		return ir.Errf(ir.ErrSchema, c.Pos, "schema %q is frozen after integrity validation", s.Name)
	}
	if _, dup := s.consts[c.Name]; dup {
		return ir.Errf(ir.ErrName, c.Pos, "duplicate constant %q", c.Name)
	}
	s.consts[c.Name] = c
	s.constOrder = append(s.constOrder, c.Name)
	return nil
}

// Definition returns the named struct/enum/alias definition, or nil.
func (s *Schema) Definition(name string) Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defs[name]
}

func (s *Schema) StructDef(name string) (*StructDef, bool) {
	d, ok := s.Definition(name).(*StructDef)
	return d, ok
}

func (s *Schema) EnumDef(name string) (*EnumDef, bool) {
	d, ok := s.Definition(name).(*EnumDef)
	return d, ok
}

func (s *Schema) AliasDef(name string) (*AliasDef, bool) {
	d, ok := s.Definition(name).(*AliasDef)
	return d, ok
}

func (s *Schema) Constant(name string) *ConstDef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consts[name]
}

// Definitions returns all definitions in registration order.
func (s *Schema) Definitions() []Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Definition, len(s.defOrder))
	for i, name := range s.defOrder {
		res[i] = s.defs[name]
	}
	return res
}

// Constants returns all constants in registration order.
func (s *Schema) Constants() []*ConstDef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*ConstDef, len(s.constOrder))
	for i, name := range s.constOrder {
		res[i] = s.consts[name]
	}
	return res
}

// ParseType parses a type string against this schema. Identical
// strings are served from a cache; cache entries are cloned on both
// sides so callers never share a Type.
func (s *Schema) ParseType(src string, pos *token.Pos) (*Type, error) {
	s.mu.RLock()
	cached := s.typeCache[src]
	s.mu.RUnlock()
	if cached != nil {
		return cached.Clone(), nil
	}
	t, err := parseTypeString(src, pos)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	// Racing parses of the same string produce structurally identical
	// results; last writer wins.
	s.typeCache[src] = t.Clone()
	s.mu.Unlock()
	return t, nil
}

// ResolveType parses (if needed) and fully resolves a type string.
func (s *Schema) ResolveType(src string) (*Type, error) {
	t, err := s.ParseType(src, nil)
	if err != nil {
		return nil, err
	}
	return t.ResolveFully(s)
}

// IntegrityChecked reports whether ValidateIntegrity has succeeded.
func (s *Schema) IntegrityChecked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.integrityOK
}

// ValidateIntegrity checks the whole schema once: every alias target
// and struct field type must resolve (surfacing cycles and undefined
// names), and every field default and constant must validate against
// its declared type. The first failure aborts; integrity is
// all-or-nothing. After success the schema is frozen and repeat calls
// are no-ops.
func (s *Schema) ValidateIntegrity() error {
	if s.IntegrityChecked() {
		return nil
	}
	v := &Validator{schema: s, strictFields: true, maxDepth: DefaultMaxDepth}
	for _, def := range s.Definitions() {
		if debug.Resolve() {
			debug.Logf("integrity: resolving %s\n", def.DefName())
		}
		switch d := def.(type) {
		case *AliasDef:
			if _, err := d.Target.ResolveFully(s); err != nil {
				return err
			}
		case *StructDef:
			for _, f := range d.Fields {
				if _, err := f.Type.ResolveFully(s); err != nil {
					return err
				}
				if err := v.validateFieldDefault(d.Name, f); err != nil {
					return err
				}
			}
		}
	}
	for _, c := range s.Constants() {
		if err := v.ValidateConstant(c); err != nil {
			// A bad constant is a schema authoring bug.
			return ir.Errf(ir.ErrSchema, c.Pos, "constant %q: %v", c.Name, err)
		}
	}
	s.mu.Lock()
	s.integrityOK = true
	s.mu.Unlock()
	return nil
}
