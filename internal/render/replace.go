package render

import (
	"bytes"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// replacements are matched case-insensitively in prose text.
var replacements = []struct {
	from string
	to   string
}{
	{"(c)", "©"},
	{"(tm)", "™"},
	{"(r)", "®"},
	{"+-", "±"},
}

// replacer swaps symbol abbreviations for their typographic characters.
// Code, raw HTML and autolinks are left alone.
type replacer struct{}

func (r *replacer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var texts []*ast.Text
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.CodeSpan, *ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock, *ast.RawHTML, *ast.AutoLink:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if !n.IsRaw() && n.Segment.Padding == 0 {
				texts = append(texts, n)
			}
		}
		return ast.WalkContinue, nil
	})
	for _, t := range texts {
		replaceText(t, source)
	}
}

func replaceText(t *ast.Text, source []byte) {
	parent := t.Parent()
	if parent == nil {
		return
	}
	seg := t.Segment
	value := seg.Value(source)

	var nodes []ast.Node
	pos := 0
	for {
		at, size, to := nextReplacement(value[pos:])
		if at < 0 {
			break
		}
		if at > 0 {
			nodes = append(nodes, ast.NewTextSegment(text.NewSegment(seg.Start+pos, seg.Start+pos+at)))
		}
		nodes = append(nodes, ast.NewString([]byte(to)))
		pos += at + size
	}
	if len(nodes) == 0 {
		return
	}

	tail := ast.NewTextSegment(text.NewSegment(seg.Start+pos, seg.Stop))
	tail.SetSoftLineBreak(t.SoftLineBreak())
	tail.SetHardLineBreak(t.HardLineBreak())
	nodes = append(nodes, tail)

	for _, n := range nodes {
		parent.InsertBefore(parent, t, n)
	}
	parent.RemoveChild(parent, t)
}

// nextReplacement finds the earliest abbreviation in v. at is -1 when there
// is none.
func nextReplacement(v []byte) (at, size int, to string) {
	lower := asciiLower(v)
	at = -1
	for _, r := range replacements {
		i := bytes.Index(lower, []byte(r.from))
		if i >= 0 && (at < 0 || i < at) {
			at, size, to = i, len(r.from), r.to
		}
	}
	return at, size, to
}

func asciiLower(v []byte) []byte {
	out := make([]byte, len(v))
	for i, c := range v {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

var _ parser.ASTTransformer = (*replacer)(nil)
