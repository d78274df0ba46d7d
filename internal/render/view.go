package render

import (
	"bolg/internal/domain/content"
	"fmt"
	"html/template"
)

// EntryPage is the view model for one entry.
type EntryPage struct {
	SiteTitle string
	Entry     content.Entry
	Body      template.HTML
	BackHref  string
}

// PageTitle is "{entry} | {site}".
func (p EntryPage) PageTitle() string {
	return fmt.Sprintf("%s | %s", p.Entry.Title, p.SiteTitle)
}

type IndexLink struct {
	Title string
	Href  string
}

// IndexPage lists every entry in display order.
type IndexPage struct {
	SiteTitle string
	Links     []IndexLink
}

func (p IndexPage) PageTitle() string {
	return p.SiteTitle
}
