package ir

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestFromKeyVals(t *testing.T) {
	v, err := FromKeyVals([]KeyVal{
		{Key: "b", Val: FromInt(2)},
		{Key: "a", Val: FromInt(1)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, v.Fields); diff != "" {
		t.Errorf("field order (-want +got):\n%s", diff)
	}
	if got := v.Field("a"); got == nil || got.Int != 1 {
		t.Errorf("Field(a) = %v", got)
	}
	if got := v.Field("zzz"); got != nil {
		t.Errorf("Field(zzz) = %v, want nil", got)
	}
}

func TestFromKeyValsDuplicate(t *testing.T) {
	_, err := FromKeyVals([]KeyVal{
		{Key: "a", Val: FromInt(1)},
		{Key: "a", Val: FromInt(2)},
	})
	if !errors.Is(err, ErrName) {
		t.Errorf("err = %v, want ErrName", err)
	}
}

func TestSetFieldOnScalar(t *testing.T) {
	err := FromInt(1).SetField("x", FromInt(2))
	if !errors.Is(err, ErrInternal) {
		t.Errorf("err = %v, want ErrInternal", err)
	}
}

func TestClone(t *testing.T) {
	orig, err := FromKeyVals([]KeyVal{
		{Key: "xs", Val: FromSlice([]*Value{FromInt(1), FromString("two")})},
		{Key: "raw", Val: FromBytes([]byte{1, 2})},
	})
	if err != nil {
		t.Fatal(err)
	}
	cl := orig.Clone()
	if diff := cmp.Diff(orig, cl); diff != "" {
		t.Errorf("clone mismatch (-orig +clone):\n%s", diff)
	}
	cl.Values[1].Bytes[0] = 99
	if orig.Values[1].Bytes[0] == 99 {
		t.Error("clone shares bytes with original")
	}
}

func TestNativeRoundTrip(t *testing.T) {
	u := uuid.MustParse("c6a0a564-7a41-4b57-9f7c-2b00a0a1fde0")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	native := map[string]any{
		"b":    true,
		"i":    int64(42),
		"f":    1.5,
		"s":    "hello",
		"list": []any{int64(1), int64(2)},
		"nest": map[string]any{"k": nil},
		"t":    ts,
		"u":    u,
	}
	v, err := FromNative(native, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != StructInstanceKind {
		t.Fatalf("kind = %s", v.Kind)
	}
	got := v.ToNative()
	if diff := cmp.Diff(native, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestFromNativeKind(t *testing.T) {
	v, err := FromNativeKind("2024-01-02T03:04:05Z", DatetimeKind, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != DatetimeKind || v.Time.Year() != 2024 {
		t.Errorf("datetime coercion = %v", v)
	}

	v, err = FromNativeKind("c6a0a564-7a41-4b57-9f7c-2b00a0a1fde0", UUIDKind, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != UUIDKind {
		t.Errorf("uuid kind = %s", v.Kind)
	}

	v, err = FromNativeKind(3, FloatKind, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != FloatKind || v.Float != 3 {
		t.Errorf("int for float = %v", v)
	}

	v, err = FromNativeKind(map[string]any{"k": int64(1)}, MapKind, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != MapKind {
		t.Errorf("map hint kind = %s", v.Kind)
	}

	if _, err := FromNativeKind("nope", IntKind, nil); !errors.Is(err, ErrType) {
		t.Errorf("string as int err = %v, want ErrType", err)
	}
	if _, err := FromNativeKind("not-a-date", DatetimeKind, nil); !errors.Is(err, ErrParse) {
		t.Errorf("bad datetime err = %v, want ErrParse", err)
	}
}

func TestLiteralText(t *testing.T) {
	obj, err := FromKeyVals([]KeyVal{
		{Key: "n", Val: FromInt(1)},
		{Key: "odd key", Val: FromBool(true)},
	})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		v    *Value
		want string
	}{
		{Null(), "null"},
		{FromBool(false), "false"},
		{FromInt(-3), "-3"},
		{FromFloat(2), "2.0"},
		{FromFloat(2.5), "2.5"},
		{FromString("hi"), `"hi"`},
		{FromBytes([]byte{0xde, 0xad}), "0xdead"},
		{FromEnum("ACTIVE"), "ACTIVE"},
		{FromSlice([]*Value{FromInt(1), FromInt(2)}), "[1, 2]"},
		{obj, `{n: 1, "odd key": true}`},
	}
	for _, tt := range tests {
		if got := tt.v.LiteralText(); got != tt.want {
			t.Errorf("LiteralText(%s) = %q, want %q", tt.v.Kind, got, tt.want)
		}
	}
}

func TestPreview(t *testing.T) {
	long := FromString("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if got := long.Preview(); len(got) != 50 {
		t.Errorf("Preview length = %d, want 50", len(got))
	}
	arr := FromSlice([]*Value{FromInt(1)})
	if got := arr.Preview(); got != "[1 elements]" {
		t.Errorf("array Preview = %q", got)
	}
}

func TestKindText(t *testing.T) {
	for _, k := range Kinds() {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Kind
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != k {
			t.Errorf("kind %s round trip = %s", k, back)
		}
	}
	if _, ok := KindForKeyword("integer"); !ok {
		t.Error("integer keyword not recognized")
	}
	if k, _ := KindForKeyword("timestamp"); k != DatetimeKind {
		t.Errorf("timestamp = %s, want datetime", k)
	}
}
