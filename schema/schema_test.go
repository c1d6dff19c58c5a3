package schema

import (
	"errors"
	"testing"

	"github.com/daxa-format/go-daxa/ir"
)

func mustField(t *testing.T, s *Schema, name, typeStr string) *Field {
	t.Helper()
	f, err := NewField(name, mustParseType(t, s, typeStr), "", nil)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func mustAddStruct(t *testing.T, s *Schema, name string, fields ...*Field) {
	t.Helper()
	def, err := NewStructDef(name, fields, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddDefinition(def); err != nil {
		t.Fatal(err)
	}
}

func TestDuplicateDefinition(t *testing.T) {
	s := New("t")
	mustAddStruct(t, s, "User")
	def, err := NewEnumDef("User", []EnumValue{{Name: "A"}}, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddDefinition(def); !errors.Is(err, ir.ErrName) {
		t.Errorf("dup definition err = %v, want ErrName", err)
	}
}

func TestDefinitionOrder(t *testing.T) {
	s := New("t")
	mustAddStruct(t, s, "B")
	mustAddStruct(t, s, "A")
	defs := s.Definitions()
	if len(defs) != 2 || defs[0].DefName() != "B" || defs[1].DefName() != "A" {
		t.Errorf("definitions out of registration order: %v", defs)
	}
}

func TestFreezeAfterIntegrity(t *testing.T) {
	s := New("t")
	mustAddStruct(t, s, "User", mustField(t, s, "id", "int"))
	if err := s.ValidateIntegrity(); err != nil {
		t.Fatal(err)
	}
	if !s.IntegrityChecked() {
		t.Fatal("integrity flag not set")
	}
	// Repeat is a no-op.
	if err := s.ValidateIntegrity(); err != nil {
		t.Fatal(err)
	}
	def, err := NewStructDef("Late", nil, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddDefinition(def); !errors.Is(err, ir.ErrSchema) {
		t.Errorf("post-freeze add err = %v, want ErrSchema", err)
	}
}

func TestIntegrityUndefinedFieldType(t *testing.T) {
	s := New("t")
	mustAddStruct(t, s, "User", mustField(t, s, "role", "Role"))
	if err := s.ValidateIntegrity(); !errors.Is(err, ir.ErrSchema) {
		t.Errorf("integrity err = %v, want ErrSchema", err)
	}
	if s.IntegrityChecked() {
		t.Error("integrity flag set despite failure")
	}
}

func TestIntegrityBadDefault(t *testing.T) {
	s := New("t")
	mustAddStruct(t, s, "Job", mustField(t, s, "retries", "int @range(1,10) @default(0)"))
	err := s.ValidateIntegrity()
	if !errors.Is(err, ir.ErrSchema) {
		t.Errorf("bad default err = %v, want ErrSchema", err)
	}
}

func TestIntegrityBadConstant(t *testing.T) {
	s := New("t")
	c, err := NewConstDef("MAX_USERS", ir.FromString("ten"), mustParseType(t, s, "int"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddConstant(c); err != nil {
		t.Fatal(err)
	}
	if err := s.ValidateIntegrity(); !errors.Is(err, ir.ErrSchema) {
		t.Errorf("bad constant err = %v, want ErrSchema", err)
	}
}

func TestConstants(t *testing.T) {
	s := New("t")
	c, err := NewConstDef("MAX_USERS", ir.FromInt(10), mustParseType(t, s, "int"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddConstant(c); err != nil {
		t.Fatal(err)
	}
	if err := s.AddConstant(c); !errors.Is(err, ir.ErrName) {
		t.Errorf("dup constant err = %v, want ErrName", err)
	}
	if err := s.ValidateIntegrity(); err != nil {
		t.Fatal(err)
	}
	if got := s.Constant("MAX_USERS"); got == nil || got.Value.Int != 10 {
		t.Errorf("Constant = %v", got)
	}
	// Constant names are validated at construction.
	if _, err := NewConstDef("lower", ir.FromInt(1), nil, nil); !errors.Is(err, ir.ErrSchema) {
		t.Errorf("bad constant name err = %v, want ErrSchema", err)
	}
}

func TestResolveTypeThroughSchema(t *testing.T) {
	s := New("t")
	mustAddAlias(t, s, "Port", "int @range(1,65535)")
	r, err := s.ResolveType("Port?")
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != ir.IntKind || !r.Optional || len(r.Constraints) != 1 {
		t.Errorf("ResolveType = %s", r.String())
	}
}
