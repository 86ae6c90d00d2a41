package pipeline

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkform/inkform/internal/entity"
	"github.com/inkform/inkform/internal/llm"
)

type stubRenderer struct {
	pages []image.Image
	err   error
}

func (s *stubRenderer) RenderPages(ctx context.Context, pdfPath string) ([]image.Image, error) {
	return s.pages, s.err
}

// stubExtractor replays a fixed sequence of outcomes, one per call.
type stubExtractor struct {
	outcomes []llm.Outcome
	err      error
	calls    int
}

func (s *stubExtractor) ExtractImage(ctx context.Context, img image.Image) (llm.Outcome, error) {
	if s.err != nil {
		return llm.Outcome{}, s.err
	}
	out := s.outcomes[s.calls%len(s.outcomes)]
	s.calls++
	return out, nil
}

func writeTestPNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	return path
}

func pageImages(n int) []image.Image {
	pages := make([]image.Image, n)
	for i := range pages {
		pages[i] = image.NewRGBA(image.Rect(0, 0, 4, 4))
	}
	return pages
}

func TestProcessImage(t *testing.T) {
	ext := &stubExtractor{outcomes: []llm.Outcome{
		llm.OK(entity.FieldDoc{Fields: []entity.Field{{Label: "Name", Value: "Ada"}}}),
	}}
	p := NewProcessor(&stubRenderer{}, ext, nil)

	out, err := p.Process(context.Background(), writeTestPNG(t))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Degraded {
		t.Fatalf("unexpected degraded outcome: %s", out.Reason)
	}
	if len(out.Doc.Fields) != 1 || out.Doc.Fields[0].Label != "Name" {
		t.Errorf("fields: got %+v", out.Doc.Fields)
	}
	if ext.calls != 1 {
		t.Errorf("extractor calls: got %d, want 1", ext.calls)
	}
}

func TestProcessImageUnreadableDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewProcessor(&stubRenderer{}, &stubExtractor{outcomes: []llm.Outcome{llm.OK(entity.FieldDoc{})}}, nil)

	out, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Degraded || out.Reason != llm.ReasonDecodeError {
		t.Fatalf("reason: got %q, want %q", out.Reason, llm.ReasonDecodeError)
	}
	if out.Doc.Fields[0].Label != "Extraction Error" {
		t.Errorf("label: got %q", out.Doc.Fields[0].Label)
	}
}

func TestProcessPDFPrefixesPageLabels(t *testing.T) {
	ext := &stubExtractor{outcomes: []llm.Outcome{
		llm.OK(entity.FieldDoc{Fields: []entity.Field{{Label: "Name", Value: "Ada"}}}),
		llm.OK(entity.FieldDoc{Fields: []entity.Field{{Label: "Date", Value: "5/1"}}}),
	}}
	p := NewProcessor(&stubRenderer{pages: pageImages(2)}, ext, nil)

	out, err := p.Process(context.Background(), "/tmp/doc.pdf")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Degraded {
		t.Fatalf("unexpected degraded outcome: %s", out.Reason)
	}
	want := []entity.Field{
		{Label: "Page 1 - Name", Value: "Ada"},
		{Label: "Page 2 - Date", Value: "5/1"},
	}
	if len(out.Doc.Fields) != len(want) {
		t.Fatalf("fields: got %d, want %d", len(out.Doc.Fields), len(want))
	}
	for i, w := range want {
		if out.Doc.Fields[i] != w {
			t.Errorf("field %d: got %+v, want %+v", i, out.Doc.Fields[i], w)
		}
	}
}

func TestProcessPDFRenderErrorDegrades(t *testing.T) {
	p := NewProcessor(&stubRenderer{err: errors.New("corrupt xref")}, &stubExtractor{}, nil)

	out, err := p.Process(context.Background(), "/tmp/doc.pdf")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Degraded || out.Reason != llm.ReasonRenderError {
		t.Fatalf("reason: got %q, want %q", out.Reason, llm.ReasonRenderError)
	}
	if out.Doc.Fields[0].Label != "PDF Processing Error" {
		t.Errorf("label: got %q", out.Doc.Fields[0].Label)
	}
}

func TestProcessPDFNoPages(t *testing.T) {
	p := NewProcessor(&stubRenderer{}, &stubExtractor{}, nil)

	out, err := p.Process(context.Background(), "/tmp/doc.pdf")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Degraded || out.Reason != llm.ReasonNoPages {
		t.Fatalf("reason: got %q, want %q", out.Reason, llm.ReasonNoPages)
	}
	if out.Doc.Fields[0].Value != "No pages found in PDF" {
		t.Errorf("value: got %q", out.Doc.Fields[0].Value)
	}
}

func TestProcessPDFNoFieldsExtracted(t *testing.T) {
	ext := &stubExtractor{outcomes: []llm.Outcome{llm.OK(entity.FieldDoc{})}}
	p := NewProcessor(&stubRenderer{pages: pageImages(3)}, ext, nil)

	out, err := p.Process(context.Background(), "/tmp/doc.pdf")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Degraded || out.Reason != llm.ReasonNoData {
		t.Fatalf("reason: got %q, want %q", out.Reason, llm.ReasonNoData)
	}
	if out.Doc.Fields[0].Value != "No text extracted from PDF" {
		t.Errorf("value: got %q", out.Doc.Fields[0].Value)
	}
}

func TestProcessPDFCarriesFirstDegradedReason(t *testing.T) {
	ext := &stubExtractor{outcomes: []llm.Outcome{
		llm.Degrade(llm.ReasonNoJSON, entity.Field{Label: "Raw AI Response", Value: "garbage"}),
		llm.OK(entity.FieldDoc{Fields: []entity.Field{{Label: "Name", Value: "Ada"}}}),
	}}
	p := NewProcessor(&stubRenderer{pages: pageImages(2)}, ext, nil)

	out, err := p.Process(context.Background(), "/tmp/doc.pdf")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Degraded || out.Reason != llm.ReasonNoJSON {
		t.Fatalf("reason: got %q, want %q", out.Reason, llm.ReasonNoJSON)
	}
	if len(out.Doc.Fields) != 2 {
		t.Errorf("fields: got %d, want 2", len(out.Doc.Fields))
	}
}

func TestProcessConfigErrorPropagates(t *testing.T) {
	wantErr := errors.New("missing key")
	p := NewProcessor(&stubRenderer{pages: pageImages(1)}, &stubExtractor{err: wantErr}, nil)

	_, err := p.Process(context.Background(), "/tmp/doc.pdf")
	if !errors.Is(err, wantErr) {
		t.Fatalf("error: got %v, want %v", err, wantErr)
	}
}
