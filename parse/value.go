package parse

import (
	"encoding/hex"
	"strconv"

	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/token"
)

// ParseLiteral parses a single Daxa value literal from src and rejects
// trailing input. path qualifies positions in errors.
func ParseLiteral(src, path string) (*ir.Value, error) {
	c := newCursor(src, path)
	v, err := parseLiteral(c)
	if err != nil {
		return nil, err
	}
	if err := c.skipSpace(); err != nil {
		return nil, err
	}
	if !c.eof() {
		return nil, c.errf("unexpected trailing %q after literal", c.rest())
	}
	return v, nil
}

// parseLiteral parses one value literal at the cursor: null, booleans,
// numbers, 0x bytes, quoted strings, bare UPPER_SNAKE enum members,
// arrays, and object literals. Object literals come out tagged as
// struct instances; schema.Coerce re-tags them under a map hint.
func parseLiteral(c *cursor) (*ir.Value, error) {
	if err := c.skipSpace(); err != nil {
		return nil, err
	}
	pos := c.pos()
	switch b := c.peek(); {
	case b == 0:
		return nil, c.errf("expected value literal, got end of input")
	case b == '"':
		s, err := parseQuoted(c)
		if err != nil {
			return nil, err
		}
		return ir.FromString(s).At(pos), nil
	case b == '[':
		return parseArray(c, pos)
	case b == '{':
		return parseObject(c, pos)
	case b == '-' || (b >= '0' && b <= '9'):
		return parseNumber(c, pos)
	case isIdentStart(b):
		id := c.peekIdent()
		c.advance(len(id))
		switch id {
		case "null":
			return ir.Null().At(pos), nil
		case "true":
			return ir.FromBool(true).At(pos), nil
		case "false":
			return ir.FromBool(false).At(pos), nil
		}
		if isUpperSnake(id) {
			return ir.FromEnum(id).At(pos), nil
		}
		return nil, ir.Errf(ir.ErrParse, pos, "unexpected identifier %q in value literal", id)
	default:
		return nil, c.errf("unexpected %q in value literal", string(b))
	}
}

func parseQuoted(c *cursor) (string, error) {
	s, n, err := token.Quoted(c.rest())
	if err != nil {
		return "", c.errf("bad string literal: %v", err)
	}
	c.advance(n)
	return s, nil
}

func parseNumber(c *cursor, pos *token.Pos) (*ir.Value, error) {
	if digits, n, err := token.Hex(c.rest()); err == nil {
		raw, err := hex.DecodeString(digits)
		if err != nil {
			return nil, c.errf("bad bytes literal: %v", err)
		}
		c.advance(n)
		return ir.FromBytes(raw).At(pos), nil
	}
	text, isFloat, n, err := token.Number(c.rest())
	if err != nil {
		return nil, c.errf("bad number literal: %v", err)
	}
	c.advance(n)
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, ir.Errf(ir.ErrParse, pos, "bad float literal %q: %v", text, err)
		}
		return ir.FromFloat(f).At(pos), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, ir.Errf(ir.ErrParse, pos, "int literal %q out of range: %v", text, err)
	}
	return ir.FromInt(i).At(pos), nil
}

func parseArray(c *cursor, pos *token.Pos) (*ir.Value, error) {
	c.advance(1)
	var elems []*ir.Value
	for {
		if err := c.skipSpace(); err != nil {
			return nil, err
		}
		if c.peek() == ']' {
			c.advance(1)
			return ir.FromSlice(elems).At(pos), nil
		}
		el, err := parseLiteral(c)
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
		if err := c.skipSpace(); err != nil {
			return nil, err
		}
		switch c.peek() {
		case ',':
			c.advance(1)
		case ']':
		default:
			return nil, c.errf("expected ',' or ']' in array literal")
		}
	}
}

// parseObject parses a brace-delimited entry list. Keys are
// identifiers or quoted strings; entries separate with ',' or ';'.
func parseObject(c *cursor, pos *token.Pos) (*ir.Value, error) {
	c.advance(1)
	res := &ir.Value{Kind: ir.StructInstanceKind, Pos: pos}
	for {
		if err := c.skipSpace(); err != nil {
			return nil, err
		}
		if c.peek() == '}' {
			c.advance(1)
			return res, nil
		}
		var key string
		if c.peek() == '"' {
			k, err := parseQuoted(c)
			if err != nil {
				return nil, err
			}
			key = k
		} else {
			k, _, err := c.ident()
			if err != nil {
				return nil, c.errf("expected entry key")
			}
			key = k
		}
		if err := c.expect(':'); err != nil {
			return nil, err
		}
		val, err := parseLiteral(c)
		if err != nil {
			return nil, err
		}
		if err := res.SetField(key, val); err != nil {
			return nil, err
		}
		if err := c.skipSpace(); err != nil {
			return nil, err
		}
		switch c.peek() {
		case ',', ';':
			c.advance(1)
		case '}':
		default:
			return nil, c.errf("expected ',', ';' or '}' in object literal")
		}
	}
}

func isUpperSnake(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '_' || (b >= 'A' && b <= 'Z') || (i > 0 && b >= '0' && b <= '9') {
			continue
		}
		return false
	}
	return true
}
