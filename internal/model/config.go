package model

import "time"

// --- Configuration Structures ---

// PrinterConfig is loaded once at startup and immutable for the process
// lifetime.
type PrinterConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	ImageWidthPx   int    `json:"imageWidthPx"`
	CutAndFeed     bool   `json:"cutAndFeed"`
	PaddingTopPx   int    `json:"paddingTopPx"`
	PaddingRightPx int    `json:"paddingRightPx"`
	MaxRasterRows  int    `json:"maxRasterRows"` // rows per raster command, device-model specific
	FeedLines      int    `json:"feedLines"`
	HistoryLimit   int    `json:"historyLimit"`
	TimeoutMs      int    `json:"timeoutMs"` // connect and write timeout
}

// AgentConfig points the job-feed agent at its WebSocket server.
type AgentConfig struct {
	WsURL    string `json:"wsUrl"`
	APIKey   string `json:"apiKey"`
	AgentKey string `json:"agentKey"`
}

type Config struct {
	Printer PrinterConfig `json:"printer"`
	Agent   AgentConfig   `json:"agent"`
}

func (c PrinterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ApplyDefaults fills unset fields. 576px is the usual 80mm head width;
// 9100 the raw JetDirect port thermal printers listen on.
func (c *PrinterConfig) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 9100
	}
	if c.ImageWidthPx == 0 {
		c.ImageWidthPx = 576
	}
	if c.MaxRasterRows == 0 {
		c.MaxRasterRows = 256
	}
	if c.FeedLines == 0 {
		c.FeedLines = 3
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 10
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = 5000
	}
}

func DefaultConfig() Config {
	cfg := Config{
		Printer: PrinterConfig{
			Host:           "192.168.2.120",
			CutAndFeed:     true,
			PaddingRightPx: 8,
		},
	}
	cfg.Printer.ApplyDefaults()
	return cfg
}
