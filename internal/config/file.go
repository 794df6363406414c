package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// ErrConfigParse is returned when the YAML overlay cannot be decoded.
var ErrConfigParse = errors.New("config: parse error")

// maxFileSize bounds the YAML overlay.
const maxFileSize = 1 << 20

// fileConfig mirrors Config in the YAML file. Absent keys leave the
// environment value in place.
type fileConfig struct {
	Port   *string `yaml:"port"`
	APIKey *string `yaml:"api_key"`

	Docx *struct {
		DefaultFont *string `yaml:"default_font"`
		MonoFont    *string `yaml:"mono_font"`
		FontSize    *int    `yaml:"font_size"`
	} `yaml:"docx"`

	PDF *struct {
		TemplateFile *string `yaml:"template_file"`
		FontDir      *string `yaml:"font_dir"`
		TypstBin     *string `yaml:"typst_bin"`
		TypstTimeout *string `yaml:"typst_timeout"`
	} `yaml:"pdf"`

	WorkerCount         *int    `yaml:"worker_count"`
	MaxQueueSize        *int    `yaml:"max_queue_size"`
	MaxConcurrentExport *int    `yaml:"max_concurrent_export"`
	MaxUploadBytes      *int64  `yaml:"max_upload_bytes"`
	JobTTL              *string `yaml:"job_ttl"`
}

// LoadFile overlays the YAML file at path onto c. Unknown keys are
// rejected.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	return c.overlay(data)
}

func (c *Config) overlay(data []byte) error {
	if len(data) > maxFileSize {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrConfigParse, maxFileSize)
	}
	var fc fileConfig
	if err := yaml.UnmarshalWithOptions(data, &fc, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	setString(&c.Port, fc.Port)
	setString(&c.APIKey, fc.APIKey)
	if d := fc.Docx; d != nil {
		setString(&c.DocxDefaultFont, d.DefaultFont)
		setString(&c.DocxMonoFont, d.MonoFont)
		if d.FontSize != nil {
			c.DocxFontSize = *d.FontSize
		}
	}
	if p := fc.PDF; p != nil {
		setString(&c.PDFTemplateFile, p.TemplateFile)
		setString(&c.PDFFontDir, p.FontDir)
		setString(&c.TypstBin, p.TypstBin)
		if err := setDuration(&c.TypstTimeout, p.TypstTimeout); err != nil {
			return err
		}
	}
	if fc.WorkerCount != nil {
		c.WorkerCount = *fc.WorkerCount
	}
	if fc.MaxQueueSize != nil {
		c.MaxQueueSize = *fc.MaxQueueSize
	}
	if fc.MaxConcurrentExport != nil {
		c.MaxConcurrentExport = *fc.MaxConcurrentExport
	}
	if fc.MaxUploadBytes != nil {
		c.MaxUploadBytes = *fc.MaxUploadBytes
	}
	return setDuration(&c.JobTTL, fc.JobTTL)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	*dst = d
	return nil
}
