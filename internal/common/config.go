package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Storage   StorageConfig
	Inference InferenceConfig
	Render    RenderConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	// DSN is either a postgres:// URL or a SQLite file path.
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr string
}

// StorageConfig holds the on-disk artifact directories.
type StorageConfig struct {
	UploadDir  string
	ResultsDir string
}

// InferenceConfig holds the remote vision-language endpoint configuration.
type InferenceConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// RenderConfig holds PDF rasterization configuration.
type RenderConfig struct {
	DPI         int
	JPEGQuality int
	MaxPages    int // 0 = no limit
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", "./data/records.db"),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		},
		Storage: StorageConfig{
			UploadDir:  getEnv("UPLOAD_DIR", "./data/uploads"),
			ResultsDir: getEnv("RESULTS_DIR", "./data/results"),
		},
		Inference: InferenceConfig{
			APIKey:      APIKeyFromEnv(),
			BaseURL:     getEnv("HF_API_URL", "https://router.huggingface.co/v1"),
			Model:       getEnv("HF_MODEL", "Qwen/Qwen2.5-VL-7B-Instruct"),
			Temperature: getEnvAsFloat32("HF_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("HF_MAX_TOKENS", 1000),
			Timeout:     getEnvAsDuration("HF_TIMEOUT", 120*time.Second),
		},
		Render: RenderConfig{
			DPI:         getEnvAsInt("RENDER_DPI", 200),
			JPEGQuality: getEnvAsInt("RENDER_JPEG_QUALITY", 95),
			MaxPages:    getEnvAsInt("RENDER_MAX_PAGES", 0),
		},
	}
}

// APIKeyFromEnv resolves the inference credential; HUGGINGFACE_API_KEY is
// preferred but the common alternative names are accepted.
func APIKeyFromEnv() string {
	for _, k := range []string{"HUGGINGFACE_API_KEY", "HF_TOKEN", "HUGGING_FACE_API_KEY"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate validates the loaded configuration. The API key is deliberately
// not required here: its absence is a per-request configuration error, not
// a startup failure.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Storage.UploadDir == "" || c.Storage.ResultsDir == "" {
		return NewAppError("CONFIG_ERROR", "UPLOAD_DIR and RESULTS_DIR are required", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
