// Package highlight turns fenced code into highlighted HTML.
package highlight

import (
	"bytes"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"html"
	"strings"
)

const (
	openTag  = `<pre class="hljs"><code>`
	closeTag = "</code></pre>"
)

type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New returns a Highlighter using the named chroma style. Unknown names fall
// back to chroma's default style.
func New(style string) *Highlighter {
	return &Highlighter{
		style: styles.Get(style),
		formatter: chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.TabWidth(2),
		),
	}
}

// Recognized reports whether lang names a language the backend can highlight.
func (h *Highlighter) Recognized(lang string) bool {
	return lookup(lang) != nil
}

// Highlight renders code as a <pre class="hljs"> block. Code in an empty or
// unknown language, or code the lexer fails on, is escaped instead.
func (h *Highlighter) Highlight(code, lang string) string {
	var b strings.Builder
	b.WriteString(openTag)
	if out, ok := h.format(code, lang); ok {
		b.WriteString(out)
	} else {
		b.WriteString(html.EscapeString(code))
	}
	b.WriteString(closeTag)
	return b.String()
}

func (h *Highlighter) format(code, lang string) (string, bool) {
	if !h.Recognized(lang) {
		return "", false
	}
	it, err := chroma.Coalesce(lookup(lang)).Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return "", false
	}
	return buf.String(), true
}

func lookup(lang string) chroma.Lexer {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil
	}
	return lexers.Get(lang)
}
