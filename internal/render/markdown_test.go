package render

import (
	"bolg/internal/highlight"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, r *MarkdownRenderer, src string) string {
	t.Helper()
	out, err := r.Render([]byte(src))
	require.NoError(t, err)
	return string(out)
}

func TestMarkdownRenderer_Typographer(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})
	out := renderString(t, r, `She said "hello" and it's fine --- really...`)

	assert.Contains(t, out, "“hello”")
	assert.Contains(t, out, "it’s")
	assert.Contains(t, out, "&mdash;")
	assert.Contains(t, out, "&hellip;")
}

func TestMarkdownRenderer_Linkify(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})
	out := renderString(t, r, "see https://example.com for more\n")
	assert.Contains(t, out, `<a href="https://example.com">https://example.com</a>`)
}

func TestMarkdownRenderer_FencedCode(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{Highlighter: highlight.New("monokai")})

	out := renderString(t, r, "```go\nfunc main() {}\n```\n")
	assert.Contains(t, out, `<pre class="hljs"><code>`)
	assert.Contains(t, out, "<span")

	out = renderString(t, r, "```\n<b>not bold</b>\n```\n")
	assert.Contains(t, out, `<pre class="hljs"><code>&lt;b&gt;not bold&lt;/b&gt;`+"\n"+`</code></pre>`)
}

func TestMarkdownRenderer_IndentedCodeKeepsDefault(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})
	out := renderString(t, r, "para\n\n    x < y\n")
	assert.Contains(t, out, "<pre><code>x &lt; y\n</code></pre>")
}

func TestMarkdownRenderer_RawHTMLEscapedByDefault(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})

	out := renderString(t, r, "Use the <kbd>Ctrl</kbd> key and <br> tags.\n")
	assert.Contains(t, out, "&lt;kbd&gt;Ctrl&lt;/kbd&gt;")
	assert.Contains(t, out, "&lt;br&gt; tags.")
	assert.NotContains(t, out, "omitted")

	out = renderString(t, r, "<div><script>alert(1)</script></div>\n")
	assert.Equal(t, "<p>&lt;div&gt;&lt;script&gt;alert(1)&lt;/script&gt;&lt;/div&gt;</p>\n", out)
}

func TestMarkdownRenderer_RawHTMLPolicies(t *testing.T) {
	src := "<div><script>alert(1)</script><b>kept</b></div>\n\ninline <i>html</i>\n"

	out := renderString(t, NewMarkdownRenderer(MarkdownOptions{RawHTML: RawHTMLOmit}), src)
	assert.Contains(t, out, "raw HTML omitted")
	assert.NotContains(t, out, "<script>")

	out = renderString(t, NewMarkdownRenderer(MarkdownOptions{RawHTML: RawHTMLSanitize}), src)
	assert.Contains(t, out, "<b>kept</b>")
	assert.Contains(t, out, "<i>html</i>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert(1)")
}

func TestMarkdownRenderer_Replacements(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})

	out := renderString(t, r, "Copyright (C) 2020 Acme(tm) and (r), tolerance +-5\n")
	assert.Equal(t, "<p>Copyright © 2020 Acme™ and ®, tolerance ±5</p>\n", out)

	out = renderString(t, r, "line one (c)\nline two `(c)`\n")
	assert.Equal(t, "<p>line one ©\nline two <code>(c)</code></p>\n", out)
}

func TestMarkdownRenderer_GFMTable(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})
	out := renderString(t, r, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
}
