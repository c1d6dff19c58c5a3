package parse

import (
	"strings"

	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/token"
)

// cursor tracks a byte offset plus line/column over document source.
// Columns count bytes from the start of the line, 1-based.
type cursor struct {
	src  string
	off  int
	line int
	col  int
	path string
}

func newCursor(src, path string) *cursor {
	return &cursor{src: src, line: 1, col: 1, path: path}
}

func (c *cursor) pos() *token.Pos {
	return token.At(c.line, c.col, c.path)
}

func (c *cursor) errf(format string, args ...any) error {
	return ir.Errf(ir.ErrParse, c.pos(), format, args...)
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

func (c *cursor) rest() string {
	return c.src[c.off:]
}

// advance consumes n bytes, updating the line/column counters.
func (c *cursor) advance(n int) {
	end := c.off + n
	if end > len(c.src) {
		end = len(c.src)
	}
	for ; c.off < end; c.off++ {
		if c.src[c.off] == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
	}
}

// skipSpace consumes whitespace and comments. Line comments run from
// "//" to end of line; block comments "/*" .. "*/" may span lines and
// do not nest.
func (c *cursor) skipSpace() error {
	for !c.eof() {
		switch {
		case c.peek() == ' ' || c.peek() == '\t' || c.peek() == '\n' || c.peek() == '\r':
			c.advance(1)
		case strings.HasPrefix(c.rest(), "//"):
			if i := strings.IndexByte(c.rest(), '\n'); i >= 0 {
				c.advance(i + 1)
			} else {
				c.advance(len(c.rest()))
			}
		case strings.HasPrefix(c.rest(), "/*"):
			i := strings.Index(c.rest()[2:], "*/")
			if i < 0 {
				return c.errf("unterminated block comment")
			}
			c.advance(2 + i + 2)
		default:
			return nil
		}
	}
	return nil
}

// skipLine consumes through the next newline.
func (c *cursor) skipLine() {
	if i := strings.IndexByte(c.rest(), '\n'); i >= 0 {
		c.advance(i + 1)
	} else {
		c.advance(len(c.rest()))
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// peekIdent returns the identifier at the cursor without consuming it.
func (c *cursor) peekIdent() string {
	if c.eof() || !isIdentStart(c.peek()) {
		return ""
	}
	i := c.off
	for i < len(c.src) && isIdentByte(c.src[i]) {
		i++
	}
	return c.src[c.off:i]
}

func (c *cursor) ident() (string, *token.Pos, error) {
	pos := c.pos()
	id := c.peekIdent()
	if id == "" {
		return "", pos, c.errf("expected identifier")
	}
	c.advance(len(id))
	return id, pos, nil
}

func (c *cursor) expect(b byte) error {
	if err := c.skipSpace(); err != nil {
		return err
	}
	if c.peek() != b {
		return c.errf("expected %q, got %q", string(b), string(c.peek()))
	}
	c.advance(1)
	return nil
}

// rawUntil consumes source through the first occurrence of stop at
// nesting depth zero, honoring brackets, quoted strings, and comments.
// The text before stop is returned; stop itself is consumed.
func (c *cursor) rawUntil(stop byte) (string, error) {
	start := c.off
	depth := 0
	for !c.eof() {
		b := c.peek()
		switch {
		case depth == 0 && b == stop:
			raw := c.src[start:c.off]
			c.advance(1)
			return raw, nil
		case b == '(' || b == '[' || b == '{':
			depth++
			c.advance(1)
		case b == ')' || b == ']' || b == '}':
			depth--
			if depth < 0 {
				return "", c.errf("unbalanced %q", string(b))
			}
			c.advance(1)
		case b == '"':
			_, n, err := token.Quoted(c.rest())
			if err != nil {
				return "", c.errf("bad string literal: %v", err)
			}
			c.advance(n)
		case strings.HasPrefix(c.rest(), "//") || strings.HasPrefix(c.rest(), "/*"):
			if err := c.skipSpace(); err != nil {
				return "", err
			}
		default:
			c.advance(1)
		}
	}
	return "", c.errf("expected %q before end of input", string(stop))
}

// rawBraced consumes a brace-delimited block starting at '{' and
// returns the raw interior text and its starting position. Nested
// braces, strings, and comments are respected.
func (c *cursor) rawBraced() (string, *token.Pos, error) {
	if err := c.expect('{'); err != nil {
		return "", nil, err
	}
	pos := c.pos()
	raw, err := c.rawUntil('}')
	if err != nil {
		return "", nil, err
	}
	return raw, pos, nil
}
