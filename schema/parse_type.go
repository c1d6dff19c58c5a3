package schema

import (
	"strconv"
	"strings"

	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/token"
)

// parseTypeString is a recursive-descent parser over the textual type
// grammar:
//
//	Type  := Base "?"? Attr*
//	Base  := "[" Type "]" | "map" "[" Type "," Type "]" | Ident
//	Attr  := "@" Ident "(" args ")"
//
// Primitive keywords (including aliases like integer, boolean,
// timestamp, guid, blob) become primitive types; any other identifier
// becomes an unresolved named reference.
func parseTypeString(src string, pos *token.Pos) (*Type, error) {
	p := &typeParser{src: src, pos: pos}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.i != len(p.src) {
		return nil, p.errf("unexpected trailing %q in type string %q", p.src[p.i:], src)
	}
	t.Constraints = normalizeConstraints(t.Constraints)
	return t, nil
}

type typeParser struct {
	src string
	i   int
	pos *token.Pos
}

func (p *typeParser) errf(format string, args ...any) error {
	return ir.Errf(ir.ErrParse, p.pos, format, args...)
}

func (p *typeParser) skipSpace() {
	for p.i < len(p.src) && (p.src[p.i] == ' ' || p.src[p.i] == '\t') {
		p.i++
	}
}

func (p *typeParser) peek() byte {
	if p.i >= len(p.src) {
		return 0
	}
	return p.src[p.i]
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return p.errf("expected %q in type string %q", string(c), p.src)
	}
	p.i++
	return nil
}

func (p *typeParser) ident() string {
	start := p.i
	for p.i < len(p.src) && isIdentByte(p.src[p.i]) {
		p.i++
	}
	return p.src[start:p.i]
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *typeParser) parseType() (*Type, error) {
	base, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == '?' {
		p.i++
		base.Optional = true
	}
	for {
		p.skipSpace()
		if p.peek() != '@' {
			break
		}
		if err := p.parseAttr(base); err != nil {
			return nil, err
		}
	}
	return base, nil
}

func (p *typeParser) parseBase() (*Type, error) {
	p.skipSpace()
	switch {
	case p.peek() == '[':
		p.i++
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return NewArray(elem, p.pos)
	case p.peek() == 0:
		return nil, p.errf("empty type string")
	}
	name := p.ident()
	if name == "" {
		return nil, p.errf("expected type name at %q", p.src[p.i:])
	}
	p.skipSpace()
	if name == "map" && p.peek() == '[' {
		p.i++
		key, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		val, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return NewMap(key, val, p.pos)
	}
	if k, ok := ir.KindForKeyword(name); ok {
		t := Prim(k)
		t.Pos = p.pos.Clone()
		return t, nil
	}
	t := Named(name)
	t.Pos = p.pos.Clone()
	return t, nil
}

// parseAttr parses one @name(args) annotation and applies it to t.
func (p *typeParser) parseAttr(t *Type) error {
	p.i++ // '@'
	name := p.ident()
	if name == "" {
		return p.errf("expected attribute name after '@'")
	}
	if err := p.expect('('); err != nil {
		return err
	}
	raw, err := p.balancedArgs()
	if err != nil {
		return err
	}
	attr := "@" + name + "(" + raw + ")"
	args := splitArgs(raw)
	switch name {
	case "minLength", "maxLength":
		if len(args) != 1 {
			return p.errf("%s takes one argument", attr)
		}
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return p.errf("bad %s argument %q: %v", name, args[0], err)
		}
		var c Constraint
		if name == "minLength" {
			c, err = NewLengthConstraint(attr, &n, nil)
		} else {
			c, err = NewLengthConstraint(attr, nil, &n)
		}
		if err != nil {
			return err
		}
		t.Constraints = append(t.Constraints, c)
	case "range":
		if len(args) == 0 || len(args) > 2 {
			return p.errf("%s takes one or two arguments", attr)
		}
		min, exclMin, err := rangeBound(args[0], '>')
		if err != nil {
			return p.errf("bad range bound %q: %v", args[0], err)
		}
		var max *float64
		exclMax := false
		if len(args) == 2 {
			max, exclMax, err = rangeBound(args[1], '<')
			if err != nil {
				return p.errf("bad range bound %q: %v", args[1], err)
			}
		}
		c, err := NewRangeConstraint(attr, min, max, exclMin, exclMax)
		if err != nil {
			return err
		}
		t.Constraints = append(t.Constraints, c)
	case "pattern":
		if len(args) != 1 {
			return p.errf("%s takes one argument", attr)
		}
		pat, err := unquoteArg(args[0])
		if err != nil {
			return p.errf("pattern argument must be a quoted string: %v", err)
		}
		c, err := NewRegexConstraint("@pattern("+token.Quote(pat)+")", pat)
		if err != nil {
			return err
		}
		t.Constraints = append(t.Constraints, c)
	case "default":
		v, err := defaultArg(strings.TrimSpace(raw))
		if err != nil {
			return p.errf("bad default literal %q: %v", raw, err)
		}
		t.Default = v
	case "desc":
		if len(args) != 1 {
			return p.errf("%s takes one argument", attr)
		}
		d, err := unquoteArg(args[0])
		if err != nil {
			return p.errf("desc argument must be a quoted string: %v", err)
		}
		t.Description = d
	default:
		return ir.Errf(ir.ErrSchema, p.pos, "unknown attribute @%s", name)
	}
	return nil
}

// balancedArgs consumes up to the attribute's closing paren,
// respecting nested parens/brackets and quoted strings.
func (p *typeParser) balancedArgs() (string, error) {
	start := p.i
	depth := 1
	for p.i < len(p.src) {
		switch p.src[p.i] {
		case '(', '[', '{':
			depth++
			p.i++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				raw := p.src[start : p.i]
				p.i++
				return raw, nil
			}
			p.i++
		case '"':
			_, n, err := token.Quoted(p.src[p.i:])
			if err != nil {
				return "", p.errf("bad string in attribute arguments: %v", err)
			}
			p.i += n
		default:
			p.i++
		}
	}
	return "", p.errf("unterminated attribute arguments")
}

// splitArgs splits on top-level commas.
func splitArgs(raw string) []string {
	var res []string
	depth, start := 0, 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '"':
			_, n, err := token.Quoted(raw[i:])
			if err == nil {
				i += n - 1
			}
		case ',':
			if depth == 0 {
				res = append(res, raw[start:i])
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(raw[start:]); tail != "" || len(res) > 0 {
		res = append(res, raw[start:])
	}
	return res
}

// rangeBound parses one @range bound: "*" (absent), a number, or a
// number prefixed with the exclusivity marker.
func rangeBound(arg string, excl byte) (*float64, bool, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" || arg == "*" {
		return nil, false, nil
	}
	exclusive := false
	if arg[0] == excl {
		exclusive = true
		arg = strings.TrimSpace(arg[1:])
	}
	n, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return nil, false, err
	}
	return &n, exclusive, nil
}

func unquoteArg(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	v, n, err := token.Quoted(arg)
	if err != nil {
		return "", err
	}
	if n != len(arg) {
		return "", token.ErrBadEscape
	}
	return v, nil
}

// defaultArg parses the @default literal into a native value:
// null/bool/int/float, a quoted string, a bare UPPER_SNAKE enum
// member (kept as a string), or an empty array.
func defaultArg(raw string) (any, error) {
	switch raw {
	case "":
		return nil, ir.Errf(ir.ErrParse, nil, "empty default")
	case "null":
		return nil, ir.Errf(ir.ErrParse, nil, "default cannot be null")
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "[]":
		return []any{}, nil
	}
	if raw[0] == '"' {
		return unquoteArg(raw)
	}
	if text, isFloat, n, err := token.Number(raw); err == nil && n == len(raw) {
		if isFloat {
			return strconv.ParseFloat(text, 64)
		}
		return strconv.ParseInt(text, 10, 64)
	}
	if upperSnakeRe.MatchString(raw) {
		return raw, nil
	}
	return nil, ir.Errf(ir.ErrParse, nil, "unsupported default literal")
}
