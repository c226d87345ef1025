package raster

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// Options configures the Chromium renderer. Zero values fall back to the
// defaults below.
type Options struct {
	ChromePath   string
	WidthPx      int
	Scale        int
	SettleDelay  time.Duration
	ImageTimeout time.Duration
	Timeout      time.Duration
}

const (
	defaultWidthPx      = 794 // 8.27in at 96 DPI, one A4 page width
	defaultScale        = 2
	defaultSettleDelay  = 300 * time.Millisecond
	defaultImageTimeout = 3 * time.Second
	defaultTimeout      = 30 * time.Second
)

func (o *Options) applyDefaults() {
	if o.ChromePath == "" {
		o.ChromePath = detectChromePath()
	}
	if o.WidthPx <= 0 {
		o.WidthPx = defaultWidthPx
	}
	if o.Scale <= 0 {
		o.Scale = defaultScale
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = defaultSettleDelay
	}
	if o.ImageTimeout <= 0 {
		o.ImageTimeout = defaultImageTimeout
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
}

// ChromiumRenderer rasterizes HTML with a headless Chromium tab. A mutex
// serializes renders: the browser tab is a single-owner surface, acquired
// and torn down around each document.
type ChromiumRenderer struct {
	opts   Options
	logger zerolog.Logger
	mu     sync.Mutex
}

func NewChromiumRenderer(opts Options, logger zerolog.Logger) *ChromiumRenderer {
	opts.applyDefaults()
	return &ChromiumRenderer{opts: opts, logger: logger}
}

// waitImagesJS resolves once every embedded image has loaded, failed, or
// exceeded its per-image timeout. Slow and broken images resolve rather than
// block; they render blank in the snapshot.
const waitImagesJS = `
Promise.all(Array.from(document.images).map(function(img) {
	if (img.complete) { return Promise.resolve(); }
	return new Promise(function(resolve) {
		img.addEventListener('load', resolve);
		img.addEventListener('error', resolve);
		setTimeout(resolve, %d);
	});
})).then(function() { return true; });
`

// RenderHTML rasterizes one HTML document to a full-height bitmap at the
// configured page width and scale factor.
func (r *ChromiumRenderer) RenderHTML(ctx context.Context, html string) (*Bitmap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timeoutCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ChromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	start := time.Now()
	waitJS := fmt.Sprintf(waitImagesJS, r.opts.ImageTimeout.Milliseconds())
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var buf []byte
	err := chromedp.Run(taskCtx,
		chromedp.EmulateViewport(int64(r.opts.WidthPx), 600, chromedp.EmulateScale(float64(r.opts.Scale))),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(waitJS, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.Sleep(r.opts.SettleDelay),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("rasterize html: %w", err)
	}

	bm, err := bitmapFromPNG(buf)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Int("width_px", bm.Width).
		Int("height_px", bm.Height).
		Dur("elapsed", time.Since(start)).
		Msg("rasterized document")

	return bm, nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
