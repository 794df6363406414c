package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/docexport/internal/config"
	"github.com/dgallion1/docexport/internal/typst"
)

func TestOptionsFromConfig(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "page.typ")
	if err := os.WriteFile(tmpl, []byte("#set page(paper: \"us-letter\")\n{{content}}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	fontDir := filepath.Join(dir, "fonts")
	if err := os.Mkdir(fontDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(fontDir, "Body.ttf"), []byte("font"), 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	opts, err := OptionsFromConfig(config.Config{
		DocxDefaultFont: "Georgia",
		DocxMonoFont:    "Menlo",
		DocxFontSize:    24,
		PDFTemplateFile: tmpl,
		PDFFontDir:      fontDir,
		TypstBin:        "/opt/typst",
		TypstTimeout:    5 * time.Second,
	}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Docx.DefaultFont != "Georgia" || opts.Docx.MonoFont != "Menlo" || opts.Docx.BodySize != 24 {
		t.Errorf("unexpected docx config %+v", opts.Docx)
	}
	if opts.PDFTemplate == "" || opts.PDFTemplate[:9] != "#set page" {
		t.Errorf("expected template file contents, got %q", opts.PDFTemplate)
	}
	c, ok := opts.Compiler.(*typst.CLICompiler)
	if !ok {
		t.Fatalf("expected *typst.CLICompiler, got %T", opts.Compiler)
	}
	if c.Bin != "/opt/typst" || c.Timeout != 5*time.Second {
		t.Errorf("unexpected compiler settings bin=%q timeout=%v", c.Bin, c.Timeout)
	}
	if len(c.Fonts) != 1 || c.Fonts[0].Name != "Body.ttf" {
		t.Errorf("expected one font loaded, got %+v", c.Fonts)
	}
}

func TestOptionsFromConfig_MissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	if _, err := OptionsFromConfig(config.Config{PDFTemplateFile: missing}, testLogger()); err == nil {
		t.Error("expected error for missing template")
	}
	if _, err := OptionsFromConfig(config.Config{PDFFontDir: missing}, testLogger()); err == nil {
		t.Error("expected error for missing font dir")
	}
}
