package ir

import "fmt"

// Kind tags both runtime values and schema type nodes. The definition
// kinds (StructDefKind, EnumDefKind, AliasDefKind) appear only on
// schema.Type nodes that reference a named definition; a Value never
// carries them.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	BytesKind
	DatetimeKind
	UUIDKind
	EnumInstanceKind
	StructInstanceKind
	ArrayKind
	MapKind
	AnyKind
	DiagramSourceKind
	MathSourceKind

	StructDefKind
	EnumDefKind
	AliasDefKind
)

var kindNames = map[Kind]string{
	NullKind:           "null",
	BoolKind:           "bool",
	IntKind:            "int",
	FloatKind:          "float",
	StringKind:         "string",
	BytesKind:          "bytes",
	DatetimeKind:       "datetime",
	UUIDKind:           "uuid",
	EnumInstanceKind:   "enum-instance",
	StructInstanceKind: "struct-instance",
	ArrayKind:          "array",
	MapKind:            "map",
	AnyKind:            "any",
	DiagramSourceKind:  "dxd-source",
	MathSourceKind:     "math-source",
	StructDefKind:      "struct-def",
	EnumDefKind:        "enum-def",
	AliasDefKind:       "alias-def",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk, name := range kindNames {
		if name == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}

func Kinds() []Kind {
	return []Kind{
		NullKind, BoolKind, IntKind, FloatKind, StringKind, BytesKind,
		DatetimeKind, UUIDKind, EnumInstanceKind, StructInstanceKind,
		ArrayKind, MapKind, AnyKind, DiagramSourceKind, MathSourceKind,
		StructDefKind, EnumDefKind, AliasDefKind,
	}
}

// IsPrimitive reports whether k is a Daxa primitive value kind.
func (k Kind) IsPrimitive() bool {
	switch k {
	case NullKind, BoolKind, IntKind, FloatKind, StringKind,
		BytesKind, DatetimeKind, UUIDKind:
		return true
	}
	return false
}

// IsInstance reports whether values may carry kind k.
func (k Kind) IsInstance() bool {
	if k.IsPrimitive() {
		return true
	}
	switch k {
	case EnumInstanceKind, StructInstanceKind, ArrayKind, MapKind,
		AnyKind, DiagramSourceKind, MathSourceKind:
		return true
	}
	return false
}

// IsDefinition reports whether k tags a named schema definition
// reference rather than an instance type.
func (k Kind) IsDefinition() bool {
	switch k {
	case StructDefKind, EnumDefKind, AliasDefKind:
		return true
	}
	return false
}

// primitive keyword spellings accepted in type strings, including the
// loose aliases common in other schema languages.
var kindKeywords = map[string]Kind{
	"null":        NullKind,
	"bool":        BoolKind,
	"boolean":     BoolKind,
	"int":         IntKind,
	"integer":     IntKind,
	"long":        IntKind,
	"float":       FloatKind,
	"number":      FloatKind,
	"double":      FloatKind,
	"decimal":     FloatKind,
	"string":      StringKind,
	"bytes":       BytesKind,
	"blob":        BytesKind,
	"binary":      BytesKind,
	"datetime":    DatetimeKind,
	"timestamp":   DatetimeKind,
	"uuid":        UUIDKind,
	"guid":        UUIDKind,
	"any":         AnyKind,
	"dxd_source":  DiagramSourceKind,
	"math_source": MathSourceKind,
}

// KindForKeyword maps a type-string keyword to its primitive kind.
func KindForKeyword(name string) (Kind, bool) {
	k, ok := kindKeywords[name]
	return k, ok
}
