package parse

import (
	"path/filepath"
	"strings"

	"github.com/daxa-format/go-daxa/debug"
	"github.com/daxa-format/go-daxa/ir"
	"github.com/daxa-format/go-daxa/schema"
	"github.com/daxa-format/go-daxa/token"
)

// BlockKind discriminates the non-definition blocks of a document.
type BlockKind int

const (
	DataBlock BlockKind = iota
	DiagramBlock
	MathBlock
)

// Block is one data, diagram, or math block in document order.
type Block struct {
	Kind     BlockKind
	TypeName string // data: the declared definition name
	Name     string // data: the instance name
	Subtype  string // diagram renderer hint
	Meta     *ir.Value
	Value    *ir.Value
	Pos      *token.Pos
}

// Document is the result of parsing one Daxa source file: the schema
// built from its definitions plus its blocks in order. Prose between
// statements is skipped.
type Document struct {
	Schema *schema.Schema
	Blocks []*Block
}

// DataBlocks returns the document's data blocks in order.
func (d *Document) DataBlocks() []*Block {
	var res []*Block
	for _, b := range d.Blocks {
		if b.Kind == DataBlock {
			res = append(res, b)
		}
	}
	return res
}

type Opt func(*parser)

// StrictFields controls whether data instances may carry fields their
// struct definition does not declare. On by default.
func StrictFields(on bool) Opt {
	return func(p *parser) { p.strict = on }
}

// MaxDepth overrides the validation recursion ceiling.
func MaxDepth(n int) Opt {
	return func(p *parser) { p.depth = n }
}

// SkipValidation parses definitions and blocks without running schema
// integrity or data validation.
func SkipValidation() Opt {
	return func(p *parser) { p.skipValidation = true }
}

type parser struct {
	c   *cursor
	s   *schema.Schema
	doc *Document

	strict         bool
	depth          int
	skipValidation bool
}

// ParseDocument parses Daxa source: struct/enum/type/const definitions
// into a schema, data blocks, and dxd/math blocks. Lines that do not
// open with a statement keyword are prose and are skipped. After the
// source is consumed the schema's integrity is validated and every
// data block is checked against its declared type.
func ParseDocument(src []byte, path string, opts ...Opt) (*Document, error) {
	name := "document"
	if path != "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p := &parser{
		c:      newCursor(string(src), path),
		s:      schema.New(name),
		strict: true,
		depth:  schema.DefaultMaxDepth,
	}
	for _, o := range opts {
		o(p)
	}
	p.doc = &Document{Schema: p.s}
	if err := p.run(); err != nil {
		return nil, err
	}
	if p.skipValidation {
		return p.doc, nil
	}
	if err := p.s.ValidateIntegrity(); err != nil {
		return nil, err
	}
	if err := p.validateData(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

func (p *parser) run() error {
	for {
		if err := p.c.skipSpace(); err != nil {
			return err
		}
		if p.c.eof() {
			return nil
		}
		kw := p.c.peekIdent()
		if debug.Parse() && kw != "" {
			debug.Logf("parse: %s at %s\n", kw, p.c.pos())
		}
		var err error
		switch kw {
		case "struct":
			p.c.advance(len(kw))
			err = p.parseStruct()
		case "enum":
			p.c.advance(len(kw))
			err = p.parseEnum()
		case "type":
			p.c.advance(len(kw))
			err = p.parseAlias()
		case "const":
			p.c.advance(len(kw))
			err = p.parseConst()
		case "data":
			p.c.advance(len(kw))
			err = p.parseData()
		case "dxd":
			p.c.advance(len(kw))
			err = p.parseDiagram()
		case "math":
			p.c.advance(len(kw))
			err = p.parseMath()
		default:
			// Prose line.
			p.c.skipLine()
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) parseStruct() error {
	if err := p.c.skipSpace(); err != nil {
		return err
	}
	name, pos, err := p.c.ident()
	if err != nil {
		return err
	}
	if err := p.c.expect('{'); err != nil {
		return err
	}
	var fields []*schema.Field
	for {
		if err := p.c.skipSpace(); err != nil {
			return err
		}
		if p.c.peek() == '}' {
			p.c.advance(1)
			break
		}
		fname, fpos, err := p.c.ident()
		if err != nil {
			return err
		}
		if err := p.c.expect(':'); err != nil {
			return err
		}
		raw, err := p.c.rawUntil(';')
		if err != nil {
			return err
		}
		t, err := p.s.ParseType(strings.TrimSpace(raw), fpos)
		if err != nil {
			return err
		}
		f, err := schema.NewField(fname, t, "", fpos)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}
	def, err := schema.NewStructDef(name, fields, "", pos)
	if err != nil {
		return err
	}
	return p.s.AddDefinition(def)
}

func (p *parser) parseEnum() error {
	if err := p.c.skipSpace(); err != nil {
		return err
	}
	name, pos, err := p.c.ident()
	if err != nil {
		return err
	}
	if err := p.c.expect('{'); err != nil {
		return err
	}
	var values []schema.EnumValue
	for {
		if err := p.c.skipSpace(); err != nil {
			return err
		}
		switch p.c.peek() {
		case '}':
			p.c.advance(1)
			def, err := schema.NewEnumDef(name, values, "", pos)
			if err != nil {
				return err
			}
			return p.s.AddDefinition(def)
		case ';', ',':
			p.c.advance(1)
		default:
			member, _, err := p.c.ident()
			if err != nil {
				return err
			}
			values = append(values, schema.EnumValue{Name: member})
		}
	}
}

func (p *parser) parseAlias() error {
	if err := p.c.skipSpace(); err != nil {
		return err
	}
	name, pos, err := p.c.ident()
	if err != nil {
		return err
	}
	if err := p.c.expect('='); err != nil {
		return err
	}
	raw, err := p.c.rawUntil(';')
	if err != nil {
		return err
	}
	t, err := p.s.ParseType(strings.TrimSpace(raw), pos)
	if err != nil {
		return err
	}
	def, err := schema.NewAliasDef(name, t, "", pos)
	if err != nil {
		return err
	}
	return p.s.AddDefinition(def)
}

func (p *parser) parseConst() error {
	if err := p.c.skipSpace(); err != nil {
		return err
	}
	name, pos, err := p.c.ident()
	if err != nil {
		return err
	}
	if err := p.c.skipSpace(); err != nil {
		return err
	}
	var declared *schema.Type
	switch p.c.peek() {
	case ':':
		p.c.advance(1)
		raw, err := p.c.rawUntil('=')
		if err != nil {
			return err
		}
		declared, err = p.s.ParseType(strings.TrimSpace(raw), pos)
		if err != nil {
			return err
		}
	case '=':
		p.c.advance(1)
	default:
		return p.c.errf("expected ':' or '=' after constant name %q", name)
	}
	v, err := parseLiteral(p.c)
	if err != nil {
		return err
	}
	if err := p.c.expect(';'); err != nil {
		return err
	}
	if declared != nil {
		v, err = schema.Coerce(v, declared, p.s)
		if err != nil {
			return err
		}
	}
	def, err := schema.NewConstDef(name, v, declared, pos)
	if err != nil {
		return err
	}
	return p.s.AddConstant(def)
}

func (p *parser) parseData() error {
	if err := p.c.skipSpace(); err != nil {
		return err
	}
	typeName, pos, err := p.c.ident()
	if err != nil {
		return err
	}
	if err := p.c.skipSpace(); err != nil {
		return err
	}
	instName, _, err := p.c.ident()
	if err != nil {
		return err
	}
	if err := p.c.skipSpace(); err != nil {
		return err
	}
	if p.c.peek() != '{' {
		return p.c.errf("expected '{' to open data block %q", instName)
	}
	val, err := parseLiteral(p.c)
	if err != nil {
		return err
	}
	p.doc.Blocks = append(p.doc.Blocks, &Block{
		Kind:     DataBlock,
		TypeName: typeName,
		Name:     instName,
		Value:    val,
		Pos:      pos,
	})
	return nil
}

// parseDiagram handles `dxd [subtype] [{meta}] {content}`. When two
// brace groups appear the first is metadata; with one, it is content.
func (p *parser) parseDiagram() error {
	pos := p.c.pos()
	if err := p.c.skipSpace(); err != nil {
		return err
	}
	subtype := ""
	if isIdentStart(p.c.peek()) {
		s, _, err := p.c.ident()
		if err != nil {
			return err
		}
		subtype = s
	}
	meta, content, err := p.parseSourceBody()
	if err != nil {
		return err
	}
	p.doc.Blocks = append(p.doc.Blocks, &Block{
		Kind:    DiagramBlock,
		Subtype: subtype,
		Meta:    meta,
		Value:   ir.FromDiagramSource(content).At(pos),
		Pos:     pos,
	})
	return nil
}

func (p *parser) parseMath() error {
	pos := p.c.pos()
	meta, content, err := p.parseSourceBody()
	if err != nil {
		return err
	}
	p.doc.Blocks = append(p.doc.Blocks, &Block{
		Kind:  MathBlock,
		Meta:  meta,
		Value: ir.FromMathSource(content).At(pos),
		Pos:   pos,
	})
	return nil
}

func (p *parser) parseSourceBody() (meta *ir.Value, content string, err error) {
	raw, rawPos, err := p.c.rawBraced()
	if err != nil {
		return nil, "", err
	}
	if err := p.c.skipSpace(); err != nil {
		return nil, "", err
	}
	if p.c.peek() != '{' {
		return nil, strings.TrimSpace(raw), nil
	}
	meta, err = parseRawObject(raw, rawPos, p.c.path)
	if err != nil {
		return nil, "", err
	}
	body, _, err := p.c.rawBraced()
	if err != nil {
		return nil, "", err
	}
	return meta, strings.TrimSpace(body), nil
}

// parseRawObject parses key:value entries from the interior of an
// already-consumed brace group.
func parseRawObject(raw string, pos *token.Pos, path string) (*ir.Value, error) {
	c := &cursor{src: raw, line: pos.Line, col: pos.Col, path: path}
	res := &ir.Value{Kind: ir.StructInstanceKind, Pos: pos}
	for {
		if err := c.skipSpace(); err != nil {
			return nil, err
		}
		if c.eof() {
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
				return nil, err
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
		case 0:
		default:
			return nil, c.errf("expected ',' or ';' between entries")
		}
	}
}

// validateData checks every data block against its declared type,
// coercing string literals into datetime/uuid/enum payloads first.
func (p *parser) validateData() error {
	v, err := schema.NewValidator(p.s, p.strict, schema.WithMaxDepth(p.depth))
	if err != nil {
		return err
	}
	for _, b := range p.doc.Blocks {
		if b.Kind != DataBlock {
			continue
		}
		t, err := p.s.ParseType(b.TypeName, b.Pos)
		if err != nil {
			return err
		}
		coerced, err := schema.Coerce(b.Value, t, p.s)
		if err != nil {
			return err
		}
		if err := v.ValidateValue(coerced, t, b.Name); err != nil {
			return err
		}
		b.Value = coerced
	}
	return nil
}
