package render

import "context"

type Renderer interface {
	RenderEntry(ctx context.Context, page EntryPage) ([]byte, error)
	RenderIndex(ctx context.Context, page IndexPage) ([]byte, error)
}
