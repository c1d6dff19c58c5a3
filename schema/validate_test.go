package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/daxa-format/go-daxa/ir"
)

// userSchema builds the schema used across validator tests:
//
//	enum Status { ACTIVE; INACTIVE; }
//	struct User {
//	  id: int @range(1, *);
//	  name: string @minLength(1);
//	  tag: string?;
//	  status: Status @default(ACTIVE);
//	}
func userSchema(t *testing.T) *Schema {
	t.Helper()
	s := New("users")
	status, err := NewEnumDef("Status", []EnumValue{{Name: "ACTIVE"}, {Name: "INACTIVE"}}, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddDefinition(status); err != nil {
		t.Fatal(err)
	}
	mustAddStruct(t, s, "User",
		mustField(t, s, "id", "int @range(1, *)"),
		mustField(t, s, "name", "string @minLength(1)"),
		mustField(t, s, "tag", "string?"),
		mustField(t, s, "status", "Status @default(ACTIVE)"),
	)
	return s
}

func mustValidator(t *testing.T, s *Schema, strict bool, opts ...ValidatorOpt) *Validator {
	t.Helper()
	v, err := NewValidator(s, strict, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func user(t *testing.T, kvs ...ir.KeyVal) *ir.Value {
	t.Helper()
	v, err := ir.FromKeyVals(kvs)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestValidateUserOK(t *testing.T) {
	s := userSchema(t)
	v := mustValidator(t, s, true)
	typ := mustParseType(t, s, "User")

	val := user(t,
		ir.KeyVal{Key: "id", Val: ir.FromInt(1)},
		ir.KeyVal{Key: "name", Val: ir.FromString("bob")},
		ir.KeyVal{Key: "status", Val: ir.FromEnum("ACTIVE")},
	)
	if err := v.ValidateValue(val, typ, ""); err != nil {
		t.Fatal(err)
	}

	// tag is optional and status has a default: both may be absent,
	// and tag may be explicit null.
	val = user(t,
		ir.KeyVal{Key: "id", Val: ir.FromInt(2)},
		ir.KeyVal{Key: "name", Val: ir.FromString("eve")},
		ir.KeyVal{Key: "tag", Val: ir.Null()},
	)
	if err := v.ValidateValue(val, typ, ""); err != nil {
		t.Fatal(err)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	s := userSchema(t)
	v := mustValidator(t, s, true)
	typ := mustParseType(t, s, "User")

	val := user(t, ir.KeyVal{Key: "id", Val: ir.FromInt(1)})
	err := v.ValidateValue(val, typ, "")
	if !errors.Is(err, ir.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if !strings.Contains(err.Error(), `required field "name"`) {
		t.Errorf("err = %v, want required-field message", err)
	}
}

func TestValidateNullNonOptional(t *testing.T) {
	s := userSchema(t)
	v := mustValidator(t, s, true)
	typ := mustParseType(t, s, "User")

	val := user(t,
		ir.KeyVal{Key: "id", Val: ir.FromInt(1)},
		ir.KeyVal{Key: "name", Val: ir.Null()},
	)
	err := v.ValidateValue(val, typ, "")
	if !errors.Is(err, ir.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	var de *ir.Error
	if !errors.As(err, &de) || de.Path != "<root>.name" {
		t.Errorf("path = %v, want <root>.name", err)
	}
}

func TestValidateStrictFields(t *testing.T) {
	s := userSchema(t)
	typ := mustParseType(t, s, "User")
	val := user(t,
		ir.KeyVal{Key: "id", Val: ir.FromInt(1)},
		ir.KeyVal{Key: "name", Val: ir.FromString("bob")},
		ir.KeyVal{Key: "nickname", Val: ir.FromString("b")},
	)

	strict := mustValidator(t, s, true)
	err := strict.ValidateValue(val, typ, "")
	if !errors.Is(err, ir.ErrValidation) || !strings.Contains(err.Error(), "extraneous") {
		t.Errorf("strict err = %v, want extraneous-field validation error", err)
	}

	loose := mustValidator(t, s, false)
	if err := loose.ValidateValue(val, typ, ""); err != nil {
		t.Errorf("loose err = %v", err)
	}
}

func TestValidateEnumMembership(t *testing.T) {
	s := userSchema(t)
	v := mustValidator(t, s, true)
	typ := mustParseType(t, s, "Status")

	if err := v.ValidateValue(ir.FromEnum("INACTIVE"), typ, ""); err != nil {
		t.Fatal(err)
	}
	// Plain strings are checked for membership too.
	if err := v.ValidateValue(ir.FromString("ACTIVE"), typ, ""); err != nil {
		t.Fatal(err)
	}
	err := v.ValidateValue(ir.FromEnum("BOGUS"), typ, "")
	if !errors.Is(err, ir.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if !strings.Contains(err.Error(), "ACTIVE, INACTIVE") {
		t.Errorf("err = %v, want allowed members listed", err)
	}
}

func TestValidateKindMismatch(t *testing.T) {
	s := New("t")
	v := mustValidator(t, s, true)

	err := v.ValidateValue(ir.FromString("x"), mustParseType(t, s, "int"), "")
	if !errors.Is(err, ir.ErrType) {
		t.Fatalf("err = %v, want ErrType", err)
	}
	// int widens to float, not the reverse
	if err := v.ValidateValue(ir.FromInt(3), mustParseType(t, s, "float"), ""); err != nil {
		t.Errorf("int-for-float err = %v", err)
	}
	err = v.ValidateValue(ir.FromFloat(3), mustParseType(t, s, "int"), "")
	if !errors.Is(err, ir.ErrType) {
		t.Errorf("float-for-int err = %v, want ErrType", err)
	}
}

func TestValidateRangeExclusive(t *testing.T) {
	s := New("t")
	v := mustValidator(t, s, true)
	typ := mustParseType(t, s, "int @range(*, <10)")

	if err := v.ValidateValue(ir.FromInt(9), typ, ""); err != nil {
		t.Fatal(err)
	}
	err := v.ValidateValue(ir.FromInt(10), typ, "")
	if !errors.Is(err, ir.ErrValidation) {
		t.Errorf("exclusive max err = %v, want ErrValidation", err)
	}

	typ = mustParseType(t, s, "float @range(>0, 1)")
	if err := v.ValidateValue(ir.FromFloat(0), typ, ""); !errors.Is(err, ir.ErrValidation) {
		t.Errorf("exclusive min err = %v, want ErrValidation", err)
	}
	if err := v.ValidateValue(ir.FromFloat(1), typ, ""); err != nil {
		t.Errorf("inclusive max err = %v", err)
	}
}

func TestValidatePatternFullMatch(t *testing.T) {
	s := New("t")
	v := mustValidator(t, s, true)
	typ := mustParseType(t, s, `string @pattern("[A-Z]+")`)

	if err := v.ValidateValue(ir.FromString("ABC"), typ, ""); err != nil {
		t.Fatal(err)
	}
	// Substring matches do not count.
	err := v.ValidateValue(ir.FromString("ABc"), typ, "")
	if !errors.Is(err, ir.ErrValidation) {
		t.Errorf("partial match err = %v, want ErrValidation", err)
	}
}

func TestValidateLengthRunes(t *testing.T) {
	s := New("t")
	v := mustValidator(t, s, true)
	typ := mustParseType(t, s, "string @maxLength(3) @minLength(3)")

	// 3 runes, 5 bytes
	if err := v.ValidateValue(ir.FromString("héé"), typ, ""); err != nil {
		t.Fatal(err)
	}
	if err := v.ValidateValue(ir.FromString("hi"), typ, ""); !errors.Is(err, ir.ErrValidation) {
		t.Errorf("short string err = %v, want ErrValidation", err)
	}
}

func TestValidateArrayElementPath(t *testing.T) {
	s := New("t")
	v := mustValidator(t, s, true)
	typ := mustParseType(t, s, "[int]")

	val := ir.FromSlice([]*ir.Value{ir.FromInt(1), ir.FromString("x")})
	err := v.ValidateValue(val, typ, "")
	if !errors.Is(err, ir.ErrType) {
		t.Fatalf("err = %v, want ErrType", err)
	}
	var de *ir.Error
	if !errors.As(err, &de) || de.Path != "<root>.1" {
		t.Errorf("path = %q, want <root>.1", de.Path)
	}
}

func TestValidateMap(t *testing.T) {
	s := New("t")
	v := mustValidator(t, s, true)
	typ := mustParseType(t, s, "map[string,int]")

	// Object literals come out tagged as struct instances; shape
	// equivalence lets them validate against map types.
	val := user(t,
		ir.KeyVal{Key: "a", Val: ir.FromInt(1)},
		ir.KeyVal{Key: "b", Val: ir.FromString("no")},
	)
	err := v.ValidateValue(val, typ, "")
	var de *ir.Error
	if !errors.As(err, &de) || de.Path != "<root>.b" {
		t.Errorf("map value path = %v, want <root>.b", err)
	}
}

func TestValidateAny(t *testing.T) {
	s := New("t")
	v := mustValidator(t, s, true)

	anyType := mustParseType(t, s, "any")
	for _, val := range []*ir.Value{
		ir.FromInt(1), ir.FromString("s"), ir.FromSlice(nil), ir.Null(),
	} {
		if val.Kind == ir.NullKind {
			// null still needs optionality
			if err := v.ValidateValue(val, mustParseType(t, s, "any?"), ""); err != nil {
				t.Errorf("any? null err = %v", err)
			}
			continue
		}
		if err := v.ValidateValue(val, anyType, ""); err != nil {
			t.Errorf("any rejected %s: %v", val.Kind, err)
		}
	}

	// Constraints on any apply to the unwrapped payload.
	constrained := mustParseType(t, s, "any @minLength(2)")
	wrapped := ir.FromAny(ir.FromString("a"))
	if err := v.ValidateValue(wrapped, constrained, ""); !errors.Is(err, ir.ErrValidation) {
		t.Errorf("constrained any err = %v, want ErrValidation", err)
	}

	// A wrapped value must still satisfy a concrete expected type.
	err := v.ValidateValue(ir.FromAny(ir.FromString("x")), mustParseType(t, s, "int"), "")
	if !errors.Is(err, ir.ErrType) {
		t.Errorf("wrapped any vs int err = %v, want ErrType", err)
	}
	// Opaque payloads cannot.
	err = v.ValidateValue(ir.FromAny(struct{}{}), mustParseType(t, s, "int"), "")
	if !errors.Is(err, ir.ErrType) {
		t.Errorf("opaque any err = %v, want ErrType", err)
	}
}

func TestValidateDepthCeiling(t *testing.T) {
	s := New("t")
	v := mustValidator(t, s, true, WithMaxDepth(2))
	typ := mustParseType(t, s, "[[[int]]]")

	val := ir.FromSlice([]*ir.Value{
		ir.FromSlice([]*ir.Value{
			ir.FromSlice([]*ir.Value{ir.FromInt(1)}),
		}),
	})
	err := v.ValidateValue(val, typ, "")
	if !errors.Is(err, ir.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if !strings.Contains(err.Error(), "max recursion depth") {
		t.Errorf("err = %v, want depth message", err)
	}

	deep := mustValidator(t, s, true)
	if err := deep.ValidateValue(val, typ, ""); err != nil {
		t.Errorf("default depth err = %v", err)
	}
}

func TestNewValidatorRunsIntegrity(t *testing.T) {
	s := New("t")
	mustAddStruct(t, s, "User", mustField(t, s, "role", "Role"))
	_, err := NewValidator(s, true)
	if !errors.Is(err, ir.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation wrapping integrity failure", err)
	}
}

func TestDefaultValue(t *testing.T) {
	s := userSchema(t)
	v := mustValidator(t, s, true)

	dv, err := v.DefaultValue(mustParseType(t, s, "Status @default(ACTIVE)"))
	if err != nil {
		t.Fatal(err)
	}
	if dv.Kind != ir.EnumInstanceKind || dv.Str != "ACTIVE" {
		t.Errorf("DefaultValue = %v", dv)
	}
	dv, err = v.DefaultValue(mustParseType(t, s, "int"))
	if err != nil {
		t.Fatal(err)
	}
	if dv != nil {
		t.Errorf("no-default DefaultValue = %v, want nil", dv)
	}
}
