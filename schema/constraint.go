package schema

import (
	"regexp"
	"unicode/utf8"

	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/token"
)

// Constraint is a validation rule attached to a Type. Each constraint
// applies only to compatible value kinds; Validate is a no-op for any
// other kind, so loosely shared attribute syntax never type-checks.
type Constraint interface {
	// Attr returns the source attribute text, e.g. "@minLength(1)",
	// used for canonical type strings and round-trip serialization.
	Attr() string
	Validate(v *ir.Value, kind ir.Kind, path string, pos *token.Pos) error
}

// LengthConstraint bounds the length of String (in runes), Bytes, and
// Array values.
type LengthConstraint struct {
	attr string
	Min  *int
	Max  *int
}

func NewLengthConstraint(attr string, min, max *int) (*LengthConstraint, error) {
	if min != nil && *min < 0 {
		return nil, ir.Errf(ir.ErrSchema, nil, "min length %d must be non-negative", *min)
	}
	if max != nil && *max < 0 {
		return nil, ir.Errf(ir.ErrSchema, nil, "max length %d must be non-negative", *max)
	}
	if min != nil && max != nil && *min > *max {
		return nil, ir.Errf(ir.ErrSchema, nil, "min length %d > max length %d", *min, *max)
	}
	return &LengthConstraint{attr: attr, Min: min, Max: max}, nil
}

func (c *LengthConstraint) Attr() string { return c.attr }

func (c *LengthConstraint) Validate(v *ir.Value, kind ir.Kind, path string, pos *token.Pos) error {
	var n int
	switch kind {
	case ir.StringKind:
		n = utf8.RuneCountInString(v.Str)
	case ir.BytesKind:
		n = len(v.Bytes)
	case ir.ArrayKind:
		n = len(v.Values)
	default:
		return nil
	}
	if c.Min != nil && n < *c.Min {
		return ir.PathErrf(ir.ErrValidation, path, pos, "length %d < min %d", n, *c.Min)
	}
	if c.Max != nil && n > *c.Max {
		return ir.PathErrf(ir.ErrValidation, path, pos, "length %d > max %d", n, *c.Max)
	}
	return nil
}

// RangeConstraint bounds Int and Float values, with optional
// exclusivity per bound.
type RangeConstraint struct {
	attr         string
	Min          *float64
	Max          *float64
	ExclusiveMin bool
	ExclusiveMax bool
}

func NewRangeConstraint(attr string, min, max *float64, exclMin, exclMax bool) (*RangeConstraint, error) {
	if min != nil && max != nil && *min > *max {
		return nil, ir.Errf(ir.ErrSchema, nil, "range min %v > max %v", *min, *max)
	}
	return &RangeConstraint{attr: attr, Min: min, Max: max, ExclusiveMin: exclMin, ExclusiveMax: exclMax}, nil
}

func (c *RangeConstraint) Attr() string { return c.attr }

func (c *RangeConstraint) Validate(v *ir.Value, kind ir.Kind, path string, pos *token.Pos) error {
	var n float64
	switch kind {
	case ir.IntKind:
		n = float64(v.Int)
	case ir.FloatKind:
		n = v.Float
	default:
		return nil
	}
	if c.Min != nil {
		if c.ExclusiveMin && n <= *c.Min {
			return ir.PathErrf(ir.ErrValidation, path, pos, "value %v must be > %v", n, *c.Min)
		}
		if !c.ExclusiveMin && n < *c.Min {
			return ir.PathErrf(ir.ErrValidation, path, pos, "value %v must be >= %v", n, *c.Min)
		}
	}
	if c.Max != nil {
		if c.ExclusiveMax && n >= *c.Max {
			return ir.PathErrf(ir.ErrValidation, path, pos, "value %v must be < %v", n, *c.Max)
		}
		if !c.ExclusiveMax && n > *c.Max {
			return ir.PathErrf(ir.ErrValidation, path, pos, "value %v must be <= %v", n, *c.Max)
		}
	}
	return nil
}

// RegexConstraint requires String values to match the pattern in
// full. The pattern is compiled once at construction.
type RegexConstraint struct {
	attr    string
	Pattern string
	re      *regexp.Regexp
}

func NewRegexConstraint(attr, pattern string) (*RegexConstraint, error) {
	// Anchor so that validation is a full match, not a substring one.
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, ir.Errf(ir.ErrSchema, nil, "invalid pattern %q: %v", pattern, err)
	}
	return &RegexConstraint{attr: attr, Pattern: pattern, re: re}, nil
}

func (c *RegexConstraint) Attr() string { return c.attr }

func (c *RegexConstraint) Validate(v *ir.Value, kind ir.Kind, path string, pos *token.Pos) error {
	if kind != ir.StringKind {
		return nil
	}
	if !c.re.MatchString(v.Str) {
		return ir.PathErrf(ir.ErrValidation, path, pos,
			"value %q does not match pattern %q", v.Preview(), c.Pattern)
	}
	return nil
}
