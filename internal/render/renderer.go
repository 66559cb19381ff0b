// Package render turns ticket content into a fixed-width bitmap via an
// ordered chain of HTML rasterization backends.
package render

import (
	"context"
	"fmt"
	"log/slog"

	"ticketd/internal/model"
)

// Renderer tries its backends in fixed order, one attempt per backend, and
// surfaces *model.RenderError wrapping the last cause when all fail.
type Renderer struct {
	backends []Backend
	logger   *slog.Logger
}

// NewRenderer builds a renderer with an explicit backend chain. With no
// backends it uses the default wkhtmltoimage-then-Chrome chain.
func NewRenderer(logger *slog.Logger, backends ...Backend) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if len(backends) == 0 {
		backends = []Backend{&WkhtmlBackend{}, &ChromeBackend{}}
	}
	return &Renderer{backends: backends, logger: logger}
}

// Render expands the ticket into HTML and rasterizes it at widthPx,
// returning PNG bytes.
func (r *Renderer) Render(ctx context.Context, content model.TicketContent, widthPx int) ([]byte, error) {
	html, err := BuildHTML(content, widthPx)
	if err != nil {
		return nil, &model.RenderError{Err: err}
	}

	var last error
	for _, b := range r.backends {
		png, err := b.Render(ctx, html, widthPx)
		if err == nil {
			return png, nil
		}
		r.logger.Warn("render backend failed", "backend", b.Name(), "error", err)
		last = err
	}
	if last == nil {
		last = fmt.Errorf("no render backends configured")
	}
	return nil, &model.RenderError{Err: last}
}
