// Package raster turns a self-contained HTML document into a bitmap suitable
// for embedding in a PDF page. Rendering happens in an isolated headless
// Chromium tab navigated to a data: URL, so the output depends only on the
// HTML and CSS supplied by the caller, never on ambient page state.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
)

// Bitmap is a rasterized document: PNG-encoded pixels plus their dimensions.
type Bitmap struct {
	PNG    []byte
	Width  int
	Height int
}

// Renderer rasterizes one HTML document per call. Implementations must be
// safe for concurrent use; documents are still rendered one at a time
// because the render surface is a single-owner resource.
type Renderer interface {
	RenderHTML(ctx context.Context, html string) (*Bitmap, error)
}

// bitmapFromPNG wraps PNG bytes together with their decoded dimensions.
func bitmapFromPNG(data []byte) (*Bitmap, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return &Bitmap{PNG: data, Width: cfg.Width, Height: cfg.Height}, nil
}
