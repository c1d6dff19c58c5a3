package token

import "fmt"

// Pos is a location in a Daxa source document. Line and Col are
// 1-indexed; Path is the originating file, if known.
type Pos struct {
	Line int
	Col  int
	Path string
}

func At(line, col int, path string) *Pos {
	return &Pos{Line: line, Col: col, Path: path}
}

func (p *Pos) String() string {
	if p == nil {
		return "(L?:C?)"
	}
	if p.Path == "" {
		return fmt.Sprintf("(L%d:C%d)", p.Line, p.Col)
	}
	return fmt.Sprintf("(L%d:C%d in %q)", p.Line, p.Col, p.Path)
}

func (p *Pos) Clone() *Pos {
	if p == nil {
		return nil
	}
	q := *p
	return &q
}
