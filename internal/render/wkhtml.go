package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"ticketd/internal/utils"
)

const wkhtmlTimeout = 20 * time.Second

// WkhtmlBackend is the primary rasterization backend: the wkhtmltoimage
// command-line tool reading HTML on stdin and writing PNG to stdout.
type WkhtmlBackend struct {
	Path    string // resolved lazily when empty
	Timeout time.Duration
}

func (b *WkhtmlBackend) Name() string { return "wkhtmltoimage" }

func (b *WkhtmlBackend) Render(ctx context.Context, html string, widthPx int) ([]byte, error) {
	path := b.Path
	if path == "" {
		var err error
		path, err = utils.FindWkhtml()
		if err != nil {
			return nil, err
		}
	}

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = wkhtmlTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path,
		"--format", "png",
		"--width", strconv.Itoa(widthPx),
		"--disable-smart-width",
		"--encoding", "UTF-8",
		"--quiet",
		"-", "-",
	)
	cmd.Stdin = strings.NewReader(html)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("wkhtmltoimage: %w: %s", err, detail)
		}
		return nil, fmt.Errorf("wkhtmltoimage: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("wkhtmltoimage produced no output")
	}
	return stdout.Bytes(), nil
}
