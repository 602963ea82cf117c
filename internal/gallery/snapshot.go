package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

const (
	defaultSnapshotWidth   = 1280
	defaultSnapshotTimeout = 45 * time.Second
)

var (
	chromedpExecAllocator = chromedp.NewExecAllocator
	chromedpContext       = chromedp.NewContext
	chromedpRunner        = chromedp.Run
)

// SnapshotOptions controls the headless browser used by Snapshot.
type SnapshotOptions struct {
	Width   int
	Timeout time.Duration
}

// Snapshot loads the gallery at htmlPath in headless Chrome and saves a full
// page PNG to pngPath.
func Snapshot(parentCtx context.Context, htmlPath, pngPath string, opts SnapshotOptions) error {
	if htmlPath == "" || pngPath == "" {
		return errors.New("snapshot requires both an HTML and a PNG path")
	}

	width := opts.Width
	if width <= 0 {
		width = defaultSnapshotWidth
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultSnapshotTimeout
	}

	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to resolve gallery path: %w", err)
	}
	pageURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(absHTML)}).String()

	ctx, cancel := context.WithTimeout(parentCtx, timeout)
	defer cancel()

	allocCtx, cancelAllocator := chromedpExecAllocator(ctx, buildExecAllocatorOptions()...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := chromedpContext(allocCtx)
	defer cancelBrowser()

	slog.Info("Taking gallery snapshot", "url", pageURL, "width", width)

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(width), 900),
		emulation.SetEmulatedMedia().WithMedia("screen"),
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible("main.grid", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 90),
	}
	if err := chromedpRunner(browserCtx, tasks); err != nil {
		return fmt.Errorf("failed to capture gallery snapshot: %w", err)
	}
	if len(buf) == 0 {
		return errors.New("browser returned an empty screenshot")
	}

	if err := os.MkdirAll(filepath.Dir(pngPath), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(pngPath, buf, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	slog.Info("Saved gallery snapshot", "path", pngPath, "bytes", len(buf))
	return nil
}

func buildExecAllocatorOptions() []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Headless,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("allow-file-access-from-files", true),
	}
}
