package hf

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkform/inkform/internal/entity"
	"github.com/inkform/inkform/internal/llm"
)

// ErrMissingAPIKey is a configuration error, raised before any network
// call; unlike upstream failures it is not reported in-band.
var ErrMissingAPIKey = errors.New(
	"inference API key not found: set HUGGINGFACE_API_KEY (or HF_TOKEN / HUGGING_FACE_API_KEY)")

const errBodyExcerptLimit = 200

// ExtractImage implements llm.ImageExtractor. Upstream and transport
// failures come back as degraded outcomes so the caller's data shape stays
// uniform; only missing credentials surface as an error.
func (c *Client) ExtractImage(ctx context.Context, img image.Image) (llm.Outcome, error) {
	if c.cfg.APIKey == "" {
		return llm.Outcome{}, ErrMissingAPIKey
	}

	rid := uuid.New().String()
	start := time.Now()

	dataURL, err := llm.EncodeImageDataURL(img, c.cfg.JPEGQuality)
	if err != nil {
		c.logger.Error("hf.extract.encode_error", "req_id", rid, "error", err)
		return degradeError(llm.ReasonTransport, err), nil
	}

	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": llm.BuildExtractionPrompt()},
					{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
				},
			},
		},
		"max_tokens":  c.cfg.MaxTokens,
		"temperature": c.cfg.Temperature,
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("hf.extract.send_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return degradeError(llm.ReasonTransport, err), nil
	}

	if status == http.StatusServiceUnavailable {
		c.logger.Warn("hf.extract.model_loading", "req_id", rid, "status", status)
		return llm.Degrade(llm.ReasonServiceWarming,
			entity.Field{Label: "Model Status", Value: "Model is loading, please try again in 20-30 seconds"},
			entity.Field{Label: "Status Code", Value: "503"},
		), nil
	}
	if status != http.StatusOK {
		errMsg := string(raw)
		if errMsg == "" {
			errMsg = fmt.Sprintf("HTTP %d", status)
		}
		c.logger.Error("hf.extract.http_error",
			"req_id", rid, "status", status,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Degrade(llm.ReasonHTTPError,
			entity.Field{Label: "API Error", Value: "inference API returned an error"},
			entity.Field{Label: "Details", Value: truncate(errMsg, errBodyExcerptLimit)},
			entity.Field{Label: "Status Code", Value: fmt.Sprintf("%d", status)},
		), nil
	}

	text := llm.NormalizeResponseText(raw)
	out := llm.ParseFields(text)

	if out.Degraded {
		c.logger.Warn("hf.extract.degraded",
			"req_id", rid, "reason", out.Reason,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	} else {
		c.logger.Info("hf.extract.ok",
			"req_id", rid, "fields", len(out.Doc.Fields),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
	return out, nil
}

// degradeError converts an unexpected failure into the synthetic
// message/category field pair.
func degradeError(reason string, err error) llm.Outcome {
	return llm.Degrade(reason,
		entity.Field{Label: "Extraction Error", Value: err.Error()},
		entity.Field{Label: "Error Type", Value: fmt.Sprintf("%T", err)},
	)
}

// truncate limits s to n characters, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
