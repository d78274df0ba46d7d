package site

import (
	"fmt"
	"path"
	"strings"
)

type RouteKind string

const (
	RouteIndex RouteKind = "index"
	RouteEntry RouteKind = "entry"
)

const IndexFile = "index.html"

// Route describes where a page is written and how other pages link to it.
// OutPath is slash separated and relative to the output directory.
type Route struct {
	Kind    RouteKind
	Slug    string
	OutPath string
	Href    string
}

// NewEntryRoute lays out an entry either as "{slug}.html" or, with
// indexDocument, as "{slug}/index.html" linked by its bare slug.
func NewEntryRoute(slug string, indexDocument bool) Route {
	r := Route{Kind: RouteEntry, Slug: slug}
	if indexDocument {
		r.OutPath = path.Join(slug, IndexFile)
		r.Href = slug
	} else {
		r.OutPath = slug + ".html"
		r.Href = r.OutPath
	}
	return r
}

func NewIndexRoute(indexDocument bool) Route {
	return Route{
		Kind:    RouteIndex,
		OutPath: IndexFile,
		Href:    BackHref(indexDocument),
	}
}

// BackHref is the link entry pages use to return to the index page.
func BackHref(indexDocument bool) string {
	if indexDocument {
		return "/"
	}
	return IndexFile
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	if r.Href != "" {
		parts = append(parts, fmt.Sprintf("href=%q", r.Href))
	}
	return strings.Join(parts, " ")
}
