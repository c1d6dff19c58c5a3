package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/daxa-format/go-daxa/ir"
	"github.com/google/go-cmp/cmp"
)

const userDoc = `
This document describes the user records kept by the service. Prose
like this paragraph is ignored by the parser.

enum Status { ACTIVE; INACTIVE; }

// A registered account.
struct User {
  id: int @range(1, *);
  name: string @minLength(1);
  tag: string?;
  status: Status @default(ACTIVE);
  created: datetime;
}

type UserList = [User];

const MAX_USERS: int = 100;

data User alice {
  id: 1,
  name: "alice",
  status: ACTIVE,
  created: "2024-01-02T03:04:05Z"
}

data User bob {
  id: 2;
  name: "bob";
  tag: null;
  created: "2024-06-01T00:00:00Z";
}
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(userDoc), "users.daxa")
	if err != nil {
		t.Fatal(err)
	}
	s := doc.Schema
	if s.Name != "users" {
		t.Errorf("schema name = %q", s.Name)
	}
	if !s.IntegrityChecked() {
		t.Error("schema integrity not validated")
	}
	names := []string{}
	for _, d := range s.Definitions() {
		names = append(names, d.DefName())
	}
	if diff := cmp.Diff([]string{"Status", "User", "UserList"}, names); diff != "" {
		t.Errorf("definitions (-want +got):\n%s", diff)
	}
	if c := s.Constant("MAX_USERS"); c == nil || c.Value.Int != 100 {
		t.Errorf("MAX_USERS = %v", c)
	}

	blocks := doc.DataBlocks()
	if len(blocks) != 2 {
		t.Fatalf("data blocks = %d, want 2", len(blocks))
	}
	alice := blocks[0]
	if alice.TypeName != "User" || alice.Name != "alice" {
		t.Errorf("block = %q %q", alice.TypeName, alice.Name)
	}
	if got := alice.Value.Field("status"); got == nil || got.Kind != ir.EnumInstanceKind {
		t.Errorf("status not coerced to enum: %v", got)
	}
	created := alice.Value.Field("created")
	if created == nil || created.Kind != ir.DatetimeKind || created.Time.Year() != 2024 {
		t.Errorf("created not coerced to datetime: %v", created)
	}
	if alice.Pos == nil || alice.Pos.Path != "users.daxa" {
		t.Errorf("block pos = %v", alice.Pos)
	}
}

func TestParseDocumentValidationFailure(t *testing.T) {
	doc := `
struct User {
  id: int @range(1, *);
}

data User broken { id: 0 }
`
	_, err := ParseDocument([]byte(doc), "t.daxa")
	if !errors.Is(err, ir.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	var de *ir.Error
	if !errors.As(err, &de) || de.Path != "broken.id" {
		t.Errorf("path = %v, want broken.id", err)
	}
}

func TestParseDocumentStrictFields(t *testing.T) {
	doc := `
struct User { id: int; }
data User u { id: 1, extra: true }
`
	_, err := ParseDocument([]byte(doc), "t.daxa")
	if !errors.Is(err, ir.ErrValidation) {
		t.Fatalf("strict err = %v, want ErrValidation", err)
	}
	if _, err := ParseDocument([]byte(doc), "t.daxa", StrictFields(false)); err != nil {
		t.Fatalf("loose err = %v", err)
	}
}

func TestParseDocumentDuplicateDefinition(t *testing.T) {
	doc := `
struct User { id: int; }
enum User { A; }
`
	_, err := ParseDocument([]byte(doc), "t.daxa")
	if !errors.Is(err, ir.ErrName) {
		t.Errorf("err = %v, want ErrName", err)
	}
}

func TestParseDocumentComments(t *testing.T) {
	doc := `
// line comment
/* block
   comment */
struct User {
  id: int; // trailing comment
}
data User u { id: 1 /* inline */ }
`
	parsed, err := ParseDocument([]byte(doc), "t.daxa")
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.DataBlocks()) != 1 {
		t.Errorf("data blocks = %d", len(parsed.DataBlocks()))
	}
}

func TestParseDiagramAndMath(t *testing.T) {
	doc := `
dxd graph { layout: "dot" } {
  a -> b
}

math {
  x^2 + y^2 = r^2
}
`
	parsed, err := ParseDocument([]byte(doc), "t.daxa")
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(parsed.Blocks))
	}
	dxd := parsed.Blocks[0]
	if dxd.Kind != DiagramBlock || dxd.Subtype != "graph" {
		t.Errorf("dxd block = %+v", dxd)
	}
	if dxd.Meta == nil || dxd.Meta.Field("layout") == nil {
		t.Errorf("dxd meta = %v", dxd.Meta)
	}
	if dxd.Value.Kind != ir.DiagramSourceKind || dxd.Value.Str != "a -> b" {
		t.Errorf("dxd source = %q", dxd.Value.Str)
	}
	m := parsed.Blocks[1]
	if m.Kind != MathBlock || m.Value.Kind != ir.MathSourceKind {
		t.Errorf("math block = %+v", m)
	}
	if !strings.Contains(m.Value.Str, "x^2") {
		t.Errorf("math source = %q", m.Value.Str)
	}
}

func TestParseDocumentSkipValidation(t *testing.T) {
	doc := `
struct User { role: Role; }
`
	parsed, err := ParseDocument([]byte(doc), "t.daxa", SkipValidation())
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Schema.IntegrityChecked() {
		t.Error("integrity ran despite SkipValidation")
	}
	// The same document fails when validation runs.
	if _, err := ParseDocument([]byte(doc), "t.daxa"); !errors.Is(err, ir.ErrSchema) {
		t.Errorf("err = %v, want ErrSchema", err)
	}
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want *ir.Value
	}{
		{"null", ir.Null()},
		{"true", ir.FromBool(true)},
		{"-42", ir.FromInt(-42)},
		{"2.5", ir.FromFloat(2.5)},
		{"1e3", ir.FromFloat(1000)},
		{`"hi"`, ir.FromString("hi")},
		{"0xdead", ir.FromBytes([]byte{0xde, 0xad})},
		{"ACTIVE", ir.FromEnum("ACTIVE")},
		{"[1, 2]", ir.FromSlice([]*ir.Value{ir.FromInt(1), ir.FromInt(2)})},
		{"[]", ir.FromSlice(nil)},
	}
	for _, tt := range tests {
		got, err := ParseLiteral(tt.in, "")
		if err != nil {
			t.Errorf("ParseLiteral(%q): %v", tt.in, err)
			continue
		}
		if got.Kind != tt.want.Kind {
			t.Errorf("ParseLiteral(%q) kind = %s, want %s", tt.in, got.Kind, tt.want.Kind)
			continue
		}
		if got.LiteralText() != tt.want.LiteralText() {
			t.Errorf("ParseLiteral(%q) = %s, want %s", tt.in, got.LiteralText(), tt.want.LiteralText())
		}
	}
}

func TestParseLiteralObject(t *testing.T) {
	got, err := ParseLiteral(`{a: 1, "b c": [true], nested: {x: null}}`, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != ir.StructInstanceKind {
		t.Fatalf("kind = %s", got.Kind)
	}
	if diff := cmp.Diff([]string{"a", "b c", "nested"}, got.Fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if got.Field("nested").Field("x").Kind != ir.NullKind {
		t.Error("nested null lost")
	}
}

func TestParseLiteralErrors(t *testing.T) {
	tests := []string{
		"",
		"[1,",
		`"unterminated`,
		"{a 1}",
		"{a: 1, a: 2}",
		"lowercase",
		"@",
		"0xabc",
	}
	for _, in := range tests {
		if _, err := ParseLiteral(in, ""); !errors.Is(err, ir.ErrParse) && !errors.Is(err, ir.ErrName) {
			t.Errorf("ParseLiteral(%q) err = %v, want parse or name error", in, err)
		}
	}
}

func TestParseLiteralPositions(t *testing.T) {
	got, err := ParseLiteral("[1,\n  2]", "lit.daxa")
	if err != nil {
		t.Fatal(err)
	}
	second := got.Values[1]
	if second.Pos == nil || second.Pos.Line != 2 || second.Pos.Col != 3 {
		t.Errorf("second element pos = %v, want L2:C3", second.Pos)
	}
}
