package render

import (
	"bytes"
	"errors"
	"golang.org/x/net/html"
	"io"
	"strings"
)

const indentUnit = "  "

var (
	// blockTags put each child on its own line.
	blockTags = tagSet("html", "head", "body", "div", "section", "article", "nav",
		"header", "footer", "main", "aside", "ul", "ol", "dl", "table", "thead",
		"tbody", "tfoot", "tr", "blockquote", "figure", "details", "form",
		"fieldset", "hr", "meta", "link", "base")
	// lineTags start a new line but keep their content inline.
	lineTags = tagSet("title", "h1", "h2", "h3", "h4", "h5", "h6", "p", "li",
		"dt", "dd", "td", "th", "caption", "figcaption", "summary", "legend",
		"option")
	// verbatimTags are copied byte for byte.
	verbatimTags = tagSet("pre", "textarea")
	// rawTextTags hold CSS or script, re-indented line by line.
	rawTextTags = tagSet("style", "script")
	voidTags    = tagSet("area", "base", "br", "col", "embed", "hr", "img",
		"input", "link", "meta", "source", "track", "wbr")
)

func tagSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Beautify re-indents an HTML document. It only changes whitespace that
// HTML collapses anyway; pre and textarea content is preserved exactly. When
// the input cannot be tokenised the original bytes are returned.
func Beautify(src []byte) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			out = src
		}
	}()
	res, err := beautify(src)
	if err != nil {
		return src
	}
	return res
}

type beautifier struct {
	buf      bytes.Buffer
	depth    int
	lineOpen bool
	space    bool
	// atStart is set right after a line tag opens; leading space is dropped.
	atStart  bool

	// verbatim counts open pre/textarea elements.
	verbatim int
	// rawText names the style or script element being copied.
	rawText  string
}

func beautify(src []byte) ([]byte, error) {
	b := &beautifier{}
	z := html.NewTokenizer(bytes.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, z.Err()
		}
		raw := z.Raw()
		name, _ := z.TagName()
		b.token(tt, string(name), raw)
	}
	b.endLine()
	return b.buf.Bytes(), nil
}

func (b *beautifier) token(tt html.TokenType, name string, raw []byte) {
	if b.verbatim > 0 {
		b.buf.Write(raw)
		switch {
		case tt == html.StartTagToken && verbatimTags[name]:
			b.verbatim++
		case tt == html.EndTagToken && verbatimTags[name]:
			b.verbatim--
			if b.verbatim == 0 {
				b.endLine()
			}
		}
		return
	}

	switch tt {
	case html.CommentToken:
		if b.lineOpen {
			b.inline(raw)
			return
		}
		b.startLine()
		b.buf.Write(raw)
		b.endLine()

	case html.DoctypeToken:
		b.startLine()
		b.buf.Write(raw)
		b.endLine()

	case html.TextToken:
		if b.rawText != "" {
			b.writeRawText(raw)
			return
		}
		b.writeText(raw)

	case html.StartTagToken, html.SelfClosingTagToken:
		b.openElement(tt, name, raw)

	case html.EndTagToken:
		b.closeElement(name, raw)
	}
}

func (b *beautifier) openElement(tt html.TokenType, name string, raw []byte) {
	void := voidTags[name] || tt == html.SelfClosingTagToken
	switch {
	case verbatimTags[name] && !void:
		b.startLine()
		b.buf.Write(raw)
		b.verbatim = 1
	case rawTextTags[name] && !void:
		b.startLine()
		b.buf.Write(raw)
		b.endLine()
		b.depth++
		b.rawText = name
	case blockTags[name]:
		b.startLine()
		b.buf.Write(raw)
		b.endLine()
		if !void {
			b.depth++
		}
	case lineTags[name]:
		b.startLine()
		b.buf.Write(raw)
		if !void {
			b.depth++
			b.atStart = true
		}
	default:
		b.inline(raw)
	}
}

func (b *beautifier) closeElement(name string, raw []byte) {
	switch {
	case blockTags[name] || rawTextTags[name]:
		if name == b.rawText {
			b.rawText = ""
		}
		b.dedent()
		b.startLine()
		b.buf.Write(raw)
		b.endLine()
	case lineTags[name]:
		b.dedent()
		if b.lineOpen {
			b.buf.Write(raw)
		} else {
			b.startLine()
			b.buf.Write(raw)
		}
		b.endLine()
	default:
		b.inline(raw)
	}
}

func (b *beautifier) inline(raw []byte) {
	if !b.lineOpen {
		b.startLine()
	} else if b.space && !b.atStart {
		b.buf.WriteByte(' ')
	}
	b.space = false
	b.atStart = false
	b.buf.Write(raw)
}

func (b *beautifier) writeText(raw []byte) {
	text := string(raw)
	fields := strings.Fields(text)
	if len(fields) == 0 {
		if b.lineOpen && !b.atStart {
			b.space = true
		}
		return
	}
	if !b.lineOpen {
		b.startLine()
	} else if !b.atStart && (b.space || isSpace(text[0])) {
		b.buf.WriteByte(' ')
	}
	b.atStart = false
	b.buf.WriteString(strings.Join(fields, " "))
	b.space = isSpace(text[len(text)-1])
}

// writeRawText emits style or script content one trimmed line at a time,
// nesting on braces.
func (b *beautifier) writeRawText(raw []byte) {
	nest := 0
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "}") && nest > 0 {
			nest--
		}
		b.endLine()
		b.buf.WriteString(strings.Repeat(indentUnit, b.depth+nest))
		b.buf.WriteString(line)
		b.lineOpen = true
		if strings.HasSuffix(line, "{") {
			nest++
		}
	}
	b.endLine()
}

func (b *beautifier) startLine() {
	b.endLine()
	b.buf.WriteString(strings.Repeat(indentUnit, b.depth))
	b.lineOpen = true
}

func (b *beautifier) endLine() {
	if b.lineOpen {
		b.buf.WriteByte('\n')
	}
	b.lineOpen = false
	b.space = false
	b.atStart = false
}

func (b *beautifier) dedent() {
	if b.depth > 0 {
		b.depth--
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
