package app

import (
	"bolg/internal/domain/content"
	"bolg/internal/domain/site"
)

// RouteBuilder lays out entries according to the site's indexDocument
// setting.
type RouteBuilder struct {
	IndexDocument bool
}

func (rb *RouteBuilder) EntryRoute(e content.Entry) site.Route {
	return site.NewEntryRoute(e.Slug, rb.IndexDocument)
}

// BuildEntryRoutes returns one route per entry, in the same order.
func (rb *RouteBuilder) BuildEntryRoutes(entries []content.Entry) []site.Route {
	routes := make([]site.Route, 0, len(entries))
	for _, e := range entries {
		routes = append(routes, rb.EntryRoute(e))
	}
	return routes
}

func (rb *RouteBuilder) IndexRoute() site.Route {
	return site.NewIndexRoute(rb.IndexDocument)
}

func (rb *RouteBuilder) BackHref() string {
	return site.BackHref(rb.IndexDocument)
}
