package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight_KnownLanguage(t *testing.T) {
	h := New("monokai")
	out := h.Highlight("package main\n\nfunc main() {}\n", "go")

	assert.True(t, strings.HasPrefix(out, `<pre class="hljs"><code>`), out)
	assert.True(t, strings.HasSuffix(out, `</code></pre>`), out)
	assert.Contains(t, out, "<span")
	assert.Contains(t, out, "package")
	assert.NotContains(t, out, `<pre class="chroma"`)
}

func TestHighlight_FallbackEscapes(t *testing.T) {
	h := New("monokai")
	code := `if a < b && c > "d" {}`
	want := `<pre class="hljs"><code>if a &lt; b &amp;&amp; c &gt; &#34;d&#34; {}</code></pre>`

	assert.Equal(t, want, h.Highlight(code, ""))
	assert.Equal(t, want, h.Highlight(code, "not-a-real-language"))
}

func TestRecognized(t *testing.T) {
	h := New("")
	assert.True(t, h.Recognized("go"))
	assert.True(t, h.Recognized("javascript"))
	assert.True(t, h.Recognized("js"))
	assert.False(t, h.Recognized(""))
	assert.False(t, h.Recognized("not-a-real-language"))
}

func TestHighlight_UnknownStyleStillHighlights(t *testing.T) {
	out := New("no-such-style").Highlight("x := 1", "go")
	assert.Contains(t, out, "<span")
}
