package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEntryRoute(t *testing.T) {
	r := NewEntryRoute("my-post", false)
	assert.Equal(t, RouteEntry, r.Kind)
	assert.Equal(t, "my-post.html", r.OutPath)
	assert.Equal(t, "my-post.html", r.Href)

	r = NewEntryRoute("my-post", true)
	assert.Equal(t, "my-post/index.html", r.OutPath)
	assert.Equal(t, "my-post", r.Href)
}

func TestBackHref(t *testing.T) {
	assert.Equal(t, "index.html", BackHref(false))
	assert.Equal(t, "/", BackHref(true))
}

func TestNewIndexRoute(t *testing.T) {
	r := NewIndexRoute(true)
	assert.Equal(t, RouteIndex, r.Kind)
	assert.Equal(t, "index.html", r.OutPath)
	assert.Equal(t, "/", r.Href)
}

func TestRouteString(t *testing.T) {
	r := NewEntryRoute("a", false)
	assert.Equal(t, `entry slug=a out=a.html href="a.html"`, r.String())
}
