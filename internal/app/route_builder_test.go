package app

import (
	"bolg/internal/domain/content"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteBuilder_Flat(t *testing.T) {
	rb := &RouteBuilder{}
	r := rb.EntryRoute(content.Entry{Slug: "hello"})
	assert.Equal(t, "hello.html", r.OutPath)
	assert.Equal(t, "hello.html", r.Href)
	assert.Equal(t, "index.html", rb.IndexRoute().OutPath)
	assert.Equal(t, "index.html", rb.BackHref())
}

func TestRouteBuilder_IndexDocument(t *testing.T) {
	rb := &RouteBuilder{IndexDocument: true}
	r := rb.EntryRoute(content.Entry{Slug: "hello"})
	assert.Equal(t, "hello/index.html", r.OutPath)
	assert.Equal(t, "hello", r.Href)
	assert.Equal(t, "index.html", rb.IndexRoute().OutPath)
	assert.Equal(t, "/", rb.BackHref())
}

func TestRouteBuilder_BuildEntryRoutes(t *testing.T) {
	rb := &RouteBuilder{}
	routes := rb.BuildEntryRoutes([]content.Entry{{Slug: "b"}, {Slug: "a"}})
	if assert.Len(t, routes, 2) {
		assert.Equal(t, "b", routes[0].Slug)
		assert.Equal(t, "a.html", routes[1].OutPath)
	}
	assert.Empty(t, rb.BuildEntryRoutes(nil))
}
