package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/dgallion1/docexport/internal/config"
	"github.com/dgallion1/docexport/internal/datafile"
	"github.com/dgallion1/docexport/internal/export"
	"github.com/dgallion1/docexport/internal/pipeline"
)

// run exports one document in every requested format. Every format is
// attempted; the error reports how many failed.
func run(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(&cfg, flags)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	formats, err := export.ParseFormats(flags.formats)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		return fmt.Errorf("no output formats given")
	}

	opts, err := export.OptionsFromConfig(cfg, log)
	if err != nil {
		return err
	}
	engine := export.NewEngine(opts)

	req := pipeline.Request{Formats: formats, Name: outputName(flags)}
	if flags.template != "" {
		src, err := os.ReadFile(flags.template)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		req.Template = filepath.Base(flags.template)
		if err := engine.RegisterTemplate(req.Template, string(src)); err != nil {
			return err
		}
		if req.Data, err = readData(flags.data); err != nil {
			return err
		}
	} else {
		md, err := readInput(flags.input, stdin)
		if err != nil {
			return err
		}
		req.Markdown = md
	}

	if err := os.MkdirAll(flags.out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	job := pipeline.NewJob(req)
	pipeline.NewWorker(engine, log, resolveWorkers(flags.workers)).Process(ctx, job)

	snap := job.Snapshot()
	for _, f := range formats {
		out, ok := job.Result(f)
		if !ok {
			continue
		}
		path := filepath.Join(flags.out, snap.Name+"."+out.Extension)
		if err := os.WriteFile(path, out.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Info("wrote file", "path", path, "bytes", len(out.Data))
	}

	if n := len(snap.Progress.Errors); n > 0 {
		for _, e := range snap.Progress.Errors {
			fmt.Fprintln(stderr, e.Message)
		}
		return fmt.Errorf("%d of %d exports failed", n, len(formats))
	}
	return nil
}

// applyFlags overrides configuration with flags set on the command line.
func applyFlags(cfg *config.Config, f *cliFlags) {
	if f.changed("font") {
		cfg.DocxDefaultFont = f.font
	}
	if f.changed("mono-font") {
		cfg.DocxMonoFont = f.monoFont
	}
	if f.changed("size") {
		cfg.DocxFontSize = f.size
	}
	if f.changed("pdf-template") {
		cfg.PDFTemplateFile = f.pdfTemplate
	}
	if f.changed("font-dir") {
		cfg.PDFFontDir = f.fontDir
	}
	if f.changed("typst") {
		cfg.TypstBin = f.typst
	}
}

func outputName(f *cliFlags) string {
	if f.name != "" {
		return f.name
	}
	src := f.template
	if src == "" {
		src = f.input
	}
	if src == "" || src == "-" {
		return "document"
	}
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readData(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	return datafile.Load(path)
}

func readInput(path string, stdin io.Reader) (string, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(raw), nil
}

// resolveWorkers returns the explicit count, or half of GOMAXPROCS
// clamped to 1..4.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	n = runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > 4 {
		return 4
	}
	return n
}
