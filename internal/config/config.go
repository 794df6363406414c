package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Docx rendering
	DocxDefaultFont string
	DocxMonoFont    string
	DocxFontSize    int // half-points

	// PDF rendering
	PDFTemplateFile string
	PDFFontDir      string
	TypstBin        string
	TypstTimeout    time.Duration

	// Worker pool
	WorkerCount         int
	MaxQueueSize        int
	MaxConcurrentExport int // formats exported in parallel per job

	// Request limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Optional YAML overlay applied after the environment
	ConfigFile string
}

// Load reads the environment, applies defaults and overlays the YAML file
// named by DOCEXPORT_CONFIG when set.
func Load() (Config, error) {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCEXPORT_API_KEY"),

		DocxDefaultFont: envOr("DOCX_DEFAULT_FONT", "Times New Roman"),
		DocxMonoFont:    envOr("DOCX_MONO_FONT", "Courier New"),
		DocxFontSize:    envInt("DOCX_FONT_SIZE", 22),

		PDFTemplateFile: os.Getenv("PDF_TEMPLATE_FILE"),
		PDFFontDir:      os.Getenv("PDF_FONT_DIR"),
		TypstBin:        envOr("TYPST_BIN", "typst"),
		TypstTimeout:    envDuration("TYPST_TIMEOUT", 60*time.Second),

		WorkerCount:         envInt("WORKER_COUNT", 4),
		MaxQueueSize:        envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentExport: envInt("MAX_CONCURRENT_EXPORT", 2),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10<<20), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		ConfigFile: os.Getenv("DOCEXPORT_CONFIG"),
	}

	if cfg.ConfigFile != "" {
		if err := cfg.LoadFile(cfg.ConfigFile); err != nil {
			return cfg, err
		}
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentExport <= 0 {
		cfg.MaxConcurrentExport = 2
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.TypstTimeout <= 0 {
		cfg.TypstTimeout = 60 * time.Second
	}

	return cfg, nil
}

// Validate checks the rendering and worker settings shared by every binary.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DocxDefaultFont, validation.Required),
		validation.Field(&c.DocxMonoFont, validation.Required),
		validation.Field(&c.DocxFontSize, validation.Required, validation.Min(2), validation.Max(400)),
		validation.Field(&c.TypstBin, validation.Required),
		validation.Field(&c.WorkerCount, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxQueueSize, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxConcurrentExport, validation.Required, validation.Min(1)),
	)
}

// ValidateServer additionally requires the API key.
func (c Config) ValidateServer() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCEXPORT_API_KEY is required")
	}
	return c.Validate()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
