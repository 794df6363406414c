package export

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/docexport/internal/config"
	"github.com/dgallion1/docexport/internal/typst"
	"github.com/dgallion1/docexport/internal/wordml"
)

// OptionsFromConfig builds engine options from cfg. The PDF template and
// font directory are read once here.
func OptionsFromConfig(cfg config.Config, log *slog.Logger) (Options, error) {
	opts := Options{
		Docx: wordml.Config{
			DefaultFont: cfg.DocxDefaultFont,
			MonoFont:    cfg.DocxMonoFont,
			BodySize:    cfg.DocxFontSize,
		},
		Logger: log,
	}

	if cfg.PDFTemplateFile != "" {
		data, err := os.ReadFile(cfg.PDFTemplateFile)
		if err != nil {
			return opts, fmt.Errorf("read pdf template: %w", err)
		}
		opts.PDFTemplate = string(data)
	}

	compiler := typst.NewCLICompiler(cfg.TypstBin)
	compiler.Timeout = cfg.TypstTimeout
	if cfg.PDFFontDir != "" {
		fonts, err := typst.LoadFonts(cfg.PDFFontDir)
		if err != nil {
			return opts, err
		}
		compiler.Fonts = fonts
	}
	opts.Compiler = compiler

	return opts, nil
}
