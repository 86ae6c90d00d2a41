// Package render rasterizes PDF pages to in-memory images via MuPDF
// (go-fitz), so each page can be sent through the extraction client.
package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/gen2brain/go-fitz"
)

type Config struct {
	DPI      int // default 200
	MaxPages int // 0 = no limit
}

type Renderer struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Renderer {
	if cfg.DPI <= 0 {
		cfg.DPI = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{cfg: cfg, logger: logger}
}

// RenderPages renders every page of the PDF at the configured DPI, in page
// order. Errors are returned as-is; the pipeline degrades them into
// informative field documents.
func (r *Renderer) RenderPages(ctx context.Context, pdfPath string) ([]image.Image, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf %q: %w", pdfPath, err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if r.cfg.MaxPages > 0 && n > r.cfg.MaxPages {
		r.logger.Warn("render.pages_capped", "path", pdfPath, "pages", n, "cap", r.cfg.MaxPages)
		n = r.cfg.MaxPages
	}

	pages := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(i, float64(r.cfg.DPI))
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}

	r.logger.Debug("render.done", "path", pdfPath, "pages", len(pages), "dpi", r.cfg.DPI)
	return pages, nil
}
