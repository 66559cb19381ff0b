package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ticketd/internal/history"
	"ticketd/internal/model"
	"ticketd/internal/printer"
	"ticketd/internal/render"
	"ticketd/internal/services"
)

// loadConfig reads the JSON config file, writing a default one on first
// run so the host/port can be edited in place.
func loadConfig(path string) (model.Config, error) {
	var cfg model.Config

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return cfg, fmt.Errorf("create config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg = model.DefaultConfig()
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return cfg, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
		}
		slog.Info("wrote default config, edit the printer host before printing", "path", path)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Printer.ApplyDefaults()
	return cfg, nil
}

// buildPipeline wires the production pipeline: real renderer chain, real
// TCP transport, fresh in-memory history.
func buildPipeline(cfg model.Config) (*services.Pipeline, *printer.Transport) {
	transport := printer.NewTransport(cfg.Printer, nil)
	hist := history.New(cfg.Printer.HistoryLimit)
	renderer := render.NewRenderer(nil)
	pipeline := services.NewPipeline(cfg.Printer, renderer, transport, hist, nil)
	return pipeline, transport
}
