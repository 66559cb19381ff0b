package render

import "context"

// Backend rasterizes an HTML document at a fixed pixel width and returns
// PNG bytes. Backends are tried in priority order, one attempt each.
type Backend interface {
	Name() string
	Render(ctx context.Context, html string, widthPx int) ([]byte, error)
}
