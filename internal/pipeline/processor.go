// Package pipeline orchestrates one upload end to end: dispatch by
// extension, per-page fan-out for PDFs, and page-label prefixing.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/inkform/inkform/constants"
	"github.com/inkform/inkform/internal/entity"
	"github.com/inkform/inkform/internal/llm"
)

// PageRenderer turns a PDF into a sequence of page images.
type PageRenderer interface {
	RenderPages(ctx context.Context, pdfPath string) ([]image.Image, error)
}

type Processor struct {
	renderer  PageRenderer
	extractor llm.ImageExtractor
	logger    *slog.Logger
}

func NewProcessor(renderer PageRenderer, extractor llm.ImageExtractor, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{renderer: renderer, extractor: extractor, logger: logger}
}

// Process extracts a field document from the file at path. The error return
// carries configuration-class failures only; everything attributable to the
// document or the upstream model degrades in-band.
func (p *Processor) Process(ctx context.Context, path string) (llm.Outcome, error) {
	start := time.Now()
	format := constants.MapExtToFormat(filepath.Ext(path))
	p.logger.Info("pipeline.process.start", "path", path, "format", format)

	var out llm.Outcome
	var err error
	switch format {
	case constants.PDF:
		out, err = p.processPDF(ctx, path)
	default:
		out, err = p.processImage(ctx, path)
	}
	if err != nil {
		return llm.Outcome{}, err
	}

	p.logger.Info("pipeline.process.done",
		"path", path,
		"fields", len(out.Doc.Fields),
		"degraded", out.Degraded,
		"reason", out.Reason,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (p *Processor) processImage(ctx context.Context, path string) (llm.Outcome, error) {
	img, err := llm.DecodeImageFile(path)
	if err != nil {
		return llm.Degrade(llm.ReasonDecodeError,
			entity.Field{Label: "Extraction Error", Value: err.Error()},
			entity.Field{Label: "Error Type", Value: fmt.Sprintf("%T", err)},
		), nil
	}
	return p.extractor.ExtractImage(ctx, img)
}

// processPDF renders every page and extracts each one individually. Field
// labels are prefixed with their 1-indexed page number so a multi-page
// document still produces a single flat field list.
func (p *Processor) processPDF(ctx context.Context, path string) (llm.Outcome, error) {
	pages, err := p.renderer.RenderPages(ctx, path)
	if err != nil {
		return llm.Degrade(llm.ReasonRenderError,
			entity.Field{Label: "PDF Processing Error", Value: err.Error()},
			entity.Field{Label: "Error Type", Value: fmt.Sprintf("%T", err)},
		), nil
	}
	if len(pages) == 0 {
		return llm.Degrade(llm.ReasonNoPages,
			entity.Field{Label: "PDF Error", Value: "No pages found in PDF"},
		), nil
	}

	var all []entity.Field
	degraded := false
	reason := ""
	for i, img := range pages {
		out, err := p.extractor.ExtractImage(ctx, img)
		if err != nil {
			return llm.Outcome{}, err
		}
		for _, f := range out.Doc.Fields {
			all = append(all, entity.Field{
				Label: fmt.Sprintf("Page %d - %s", i+1, f.Label),
				Value: f.Value,
			})
		}
		if out.Degraded && !degraded {
			degraded = true
			reason = out.Reason
		}
	}

	if len(all) == 0 {
		return llm.Degrade(llm.ReasonNoData,
			entity.Field{Label: "No Data", Value: "No text extracted from PDF"},
		), nil
	}

	out := llm.OK(entity.FieldDoc{Fields: all})
	out.Degraded = degraded
	out.Reason = reason
	return out, nil
}
