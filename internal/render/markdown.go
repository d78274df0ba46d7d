package render

import (
	"bolg/internal/highlight"
	"bytes"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// RawHTMLPolicy decides what happens to HTML tags written in Markdown.
type RawHTMLPolicy int

const (
	// RawHTMLEscape prints tags as literal text.
	RawHTMLEscape RawHTMLPolicy = iota
	// RawHTMLOmit replaces tags with an "omitted" comment.
	RawHTMLOmit
	// RawHTMLSanitize keeps tags allowed by a UGC policy.
	RawHTMLSanitize
)

type MarkdownOptions struct {
	Highlighter *highlight.Highlighter
	RawHTML     RawHTMLPolicy
}

type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer(opt MarkdownOptions) *MarkdownRenderer {
	hl := opt.Highlighter
	if hl == nil {
		hl = highlight.New("")
	}

	nodeRenderers := []util.PrioritizedValue{
		util.Prioritized(&codeBlockRenderer{hl: hl}, 200),
	}
	switch opt.RawHTML {
	case RawHTMLEscape:
		nodeRenderers = append(nodeRenderers,
			util.Prioritized(&rawHTMLRenderer{filter: util.EscapeHTML, paragraph: true}, 200))
	case RawHTMLSanitize:
		nodeRenderers = append(nodeRenderers,
			util.Prioritized(&rawHTMLRenderer{filter: bluemonday.UGCPolicy().SanitizeBytes}, 200))
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
			extension.NewTypographer(
				extension.WithTypographicSubstitutions(map[extension.TypographicPunctuation][]byte{
					extension.LeftDoubleQuote:  []byte("“"),
					extension.RightDoubleQuote: []byte("”"),
					extension.LeftSingleQuote:  []byte("‘"),
					extension.RightSingleQuote: []byte("’"),
					extension.Apostrophe:       []byte("’"),
				}),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&replacer{}, 500)),
		),
		goldmark.WithRendererOptions(renderer.WithNodeRenderers(nodeRenderers...)),
	)
	return &MarkdownRenderer{md: md}
}

// Render converts a Markdown body (front matter already removed) to HTML.
func (r *MarkdownRenderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// codeBlockRenderer hands fenced code to the highlighter. Indented code
// blocks keep goldmark's default rendering.
type codeBlockRenderer struct {
	hl *highlight.Highlighter
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	var lang string
	if l := n.Language(source); l != nil {
		lang = string(l)
	}
	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}
	_, _ = w.WriteString(r.hl.Highlight(code.String(), lang))
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

// rawHTMLRenderer passes author-written HTML through filter. With paragraph
// set, HTML blocks are printed as a paragraph of text.
type rawHTMLRenderer struct {
	filter    func([]byte) []byte
	paragraph bool
}

func (r *rawHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r *rawHTMLRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.HTMLBlock)
	var raw bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		raw.Write(seg.Value(source))
	}
	if n.HasClosure() {
		raw.Write(n.ClosureLine.Value(source))
	}
	if !r.paragraph {
		_, _ = w.Write(r.filter(raw.Bytes()))
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString("<p>")
	_, _ = w.Write(r.filter(bytes.TrimRight(raw.Bytes(), "\n")))
	_, _ = w.WriteString("</p>\n")
	return ast.WalkSkipChildren, nil
}

func (r *rawHTMLRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	var raw bytes.Buffer
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		raw.Write(seg.Value(source))
	}
	_, _ = w.Write(r.filter(raw.Bytes()))
	return ast.WalkSkipChildren, nil
}

var _ renderer.NodeRenderer = (*codeBlockRenderer)(nil)
var _ renderer.NodeRenderer = (*rawHTMLRenderer)(nil)
