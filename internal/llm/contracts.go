package llm

import (
	"context"
	"image"

	"github.com/inkform/inkform/internal/entity"
)

// Outcome is the tagged result of an extraction attempt. A degraded outcome
// still carries a well-formed field document describing the problem, so the
// wire shape stays uniform; Reason only exists for logs and tests.
type Outcome struct {
	Doc      entity.FieldDoc
	Degraded bool
	Reason   string
}

// Degradation reasons.
const (
	ReasonServiceWarming = "service-warming"
	ReasonHTTPError      = "http-error"
	ReasonTransport      = "transport-error"
	ReasonNoJSON         = "no-json"
	ReasonParseError     = "parse-error"
	ReasonMissingFields  = "missing-fields"
	ReasonDecodeError    = "image-decode-error"
	ReasonRenderError    = "render-error"
	ReasonNoPages        = "no-pages"
	ReasonNoData         = "no-data"
)

// OK wraps a successfully extracted document.
func OK(doc entity.FieldDoc) Outcome {
	return Outcome{Doc: doc}
}

// Degrade builds a degraded outcome whose document reports the failure
// in-band as synthetic fields.
func Degrade(reason string, fields ...entity.Field) Outcome {
	return Outcome{
		Doc:      entity.FieldDoc{Fields: fields},
		Degraded: true,
		Reason:   reason,
	}
}

// ImageExtractor is the interface the pipeline depends on. The error return
// is reserved for configuration-class failures (missing credentials);
// upstream and transport problems come back as degraded outcomes.
type ImageExtractor interface {
	ExtractImage(ctx context.Context, img image.Image) (Outcome, error)
}
