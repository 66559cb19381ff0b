package render

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"ticketd/internal/utils"
)

const chromeTimeout = 30 * time.Second

// ChromeBackend is the fallback rasterization backend: a headless
// Chrome/Chromium full-page screenshot at the target width. The binary is
// discovered at runtime; a missing browser is a backend error, not a crash.
type ChromeBackend struct {
	ExecPath string // resolved lazily when empty
	Timeout  time.Duration
}

func (b *ChromeBackend) Name() string { return "chromedp" }

func (b *ChromeBackend) Render(ctx context.Context, html string, widthPx int) ([]byte, error) {
	execPath := b.ExecPath
	if execPath == "" {
		var err error
		execPath, err = utils.FindChrome()
		if err != nil {
			return nil, err
		}
	}

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = chromeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	cdpCtx, cdpCancel := chromedp.NewContext(allocCtx)
	defer cdpCancel()

	var pngBytes []byte

	err := chromedp.Run(cdpCtx,
		chromedp.EmulateViewport(int64(widthPx), 800),

		// Load HTML directly using data URL
		chromedp.Navigate("data:text/html,"+urlEncode(html)),

		// Wait for the page to render
		chromedp.Sleep(300*time.Millisecond),

		// Capture full-page PNG screenshot
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, err := page.CaptureScreenshot().
				WithCaptureBeyondViewport(true). // capture full height
				Do(ctx)
			if err != nil {
				return err
			}
			pngBytes = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp screenshot: %w", err)
	}
	return pngBytes, nil
}

// Helper for encoding HTML into a data URL
func urlEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
