// Package services drives print jobs through the render, normalize, encode
// and send stages, and feeds the history store.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ticketd/internal/escpos"
	"ticketd/internal/history"
	"ticketd/internal/model"
	"ticketd/internal/printer"
	"ticketd/internal/rasterimg"
)

// Renderer rasterizes ticket content to PNG bytes at a fixed width.
type Renderer interface {
	Render(ctx context.Context, content model.TicketContent, widthPx int) ([]byte, error)
}

// Sender writes an encoded job to the device.
type Sender interface {
	Send(ctx context.Context, data []byte) error
}

// Prober reports device reachability for the health surface.
type Prober interface {
	Probe() printer.ProbeResult
}

// Pipeline owns a job from arrival to history. Any number of goroutines may
// call Execute concurrently; the transport serializes the wire underneath.
type Pipeline struct {
	cfg      model.PrinterConfig
	renderer Renderer
	sender   Sender
	history  *history.Store
	logger   *slog.Logger
}

func NewPipeline(cfg model.PrinterConfig, renderer Renderer, sender Sender, hist *history.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		renderer: renderer,
		sender:   sender,
		history:  hist,
		logger:   logger,
	}
}

func (p *Pipeline) History() *history.Store { return p.history }

// Probe reports device reachability when the sender supports probing (the
// real transport does; test doubles need not).
func (p *Pipeline) Probe() printer.ProbeResult {
	if pr, ok := p.sender.(Prober); ok {
		return pr.Probe()
	}
	return printer.ProbeResult{Detail: "sender does not support probing"}
}

func (p *Pipeline) normalizeOpts() rasterimg.Options {
	return rasterimg.Options{
		TargetWidth:  p.cfg.ImageWidthPx,
		PaddingTop:   p.cfg.PaddingTopPx,
		PaddingRight: p.cfg.PaddingRightPx,
		Mode:         model.ColorModeOneBit,
	}
}

func (p *Pipeline) encodeOpts() escpos.Options {
	return escpos.Options{
		MaxRows:   p.cfg.MaxRasterRows,
		FeedLines: p.cfg.FeedLines,
		CutFeed:   p.cfg.CutAndFeed,
	}
}

// Execute runs a job through the full pipeline. Every stage failure is
// terminal; a failed print never produces a history entry. Render and
// normalize errors tell the caller to fix the content, printer errors to
// check the device.
func (p *Pipeline) Execute(ctx context.Context, job model.PrintJob) (*model.HistoryEntry, error) {
	var (
		artifact model.RasterImage
		err      error
	)

	if img := job.Content.Image; img != nil {
		artifact, err = rasterimg.Normalize(img.Bytes, p.normalizeOpts())
	} else {
		// Render at the content width so normalization only pads, never
		// rescales generated layouts.
		contentWidth := p.cfg.ImageWidthPx - p.cfg.PaddingRightPx
		var png []byte
		png, err = p.renderer.Render(ctx, job.Content, contentWidth)
		if err == nil {
			artifact, err = rasterimg.Normalize(png, p.normalizeOpts())
		}
	}
	if err != nil {
		return nil, err
	}

	encoded, err := escpos.Encode(artifact, p.encodeOpts())
	if err != nil {
		return nil, err
	}

	if err := p.sender.Send(ctx, encoded); err != nil {
		return nil, err
	}

	entry := p.newEntry(job, artifact)
	p.history.Insert(entry)
	p.logger.Info("printed ticket", "job", job.ID, "kind", job.Content.Kind(), "height", artifact.Height)
	return entry, nil
}

// Reprint replays the stored artifact through encode and send only. It
// succeeds or fails purely on current device reachability; the renderer and
// normalizer are never consulted.
func (p *Pipeline) Reprint(ctx context.Context, id string) error {
	entry, ok := p.history.Get(id)
	if !ok {
		return fmt.Errorf("reprint %s: %w", id, model.ErrNotFound)
	}

	encoded, err := escpos.Encode(entry.Artifact, p.encodeOpts())
	if err != nil {
		return err
	}
	if err := p.sender.Send(ctx, encoded); err != nil {
		return err
	}
	p.logger.Info("reprinted ticket", "entry", id)
	return nil
}

func (p *Pipeline) newEntry(job model.PrintJob, artifact model.RasterImage) *model.HistoryEntry {
	entry := &model.HistoryEntry{
		ID:        job.ID,
		Kind:      job.Content.Kind(),
		Artifact:  artifact,
		PrintedAt: time.Now(),
	}

	switch {
	case job.Content.Task != nil:
		t := job.Content.Task
		entry.Name = t.Name
		entry.Priority = t.Priority
		entry.DueDate = t.DueDate
		entry.OperatorSignature = t.OperatorSignature
	case job.Content.Todolist != nil:
		t := job.Content.Todolist
		entry.Name = t.Title
		if entry.Name == "" {
			entry.Name = "Todolist"
		}
		entry.Items = append([]string(nil), t.Items...)
		entry.ItemCount = len(t.Items)
	default:
		entry.Name = "Image-only print"
		entry.ImageOnly = true
	}

	preview, err := rasterimg.EncodePreview(artifact)
	if err != nil {
		p.logger.Warn("preview encoding failed", "job", job.ID, "error", err)
	} else {
		entry.Preview = preview
	}
	return entry
}
