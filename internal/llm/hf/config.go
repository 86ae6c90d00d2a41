package hf

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inkform/inkform/internal/common"
)

// Config for the Hugging Face router client.
type Config struct {
	APIKey      string        // if empty, resolved from the HUGGINGFACE_API_KEY family of env vars
	BaseURL     string        // default https://router.huggingface.co/v1
	Model       string        // vision-language model id
	Temperature float32       // kept low; extraction is not a creative task
	MaxTokens   int           // response budget
	JPEGQuality int           // re-encode quality for attached images
	Timeout     time.Duration // full round-trip budget for one inference call
}

// Client issues single-shot vision chat-completion requests and funnels the
// response through the llm response parser.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = common.APIKeyFromEnv()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://router.huggingface.co/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "Qwen/Qwen2.5-VL-7B-Instruct"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = 95
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
