package typst

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Compiler turns Typst source into PDF bytes.
type Compiler interface {
	Compile(ctx context.Context, source string) ([]byte, error)
}

// CompilerFunc adapts a function to Compiler.
type CompilerFunc func(ctx context.Context, source string) ([]byte, error)

// Compile calls f.
func (f CompilerFunc) Compile(ctx context.Context, source string) ([]byte, error) {
	return f(ctx, source)
}

// Font is a font file made available to the compiler.
type Font struct {
	Name string // file name, e.g. "NotoSans-Regular.ttf"
	Data []byte
}

// CommandRunner abstracts command execution so tests can avoid a real
// typst binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("start command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return "", "", fmt.Errorf("read stderr: %w", err)
	}

	err = cmd.Wait()
	return stdout.String(), string(stderrContent), err
}

// CLICompiler compiles by invoking `typst compile` in a scratch directory.
type CLICompiler struct {
	Bin      string
	FontDirs []string
	Fonts    []Font
	Runner   CommandRunner
	Timeout  time.Duration
}

// NewCLICompiler returns a CLICompiler for bin using a real command runner.
func NewCLICompiler(bin string) *CLICompiler {
	if bin == "" {
		bin = "typst"
	}
	return &CLICompiler{Bin: bin, Runner: ExecRunner{}}
}

const (
	mainFile   = "main.typ"
	outputFile = "out.pdf"
)

// Compile writes source and any embedded fonts to a temp directory, runs
// the compiler and returns the validated PDF bytes.
func (c *CLICompiler) Compile(ctx context.Context, source string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "docexport-typst-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	mainPath := filepath.Join(dir, mainFile)
	if err := os.WriteFile(mainPath, []byte(source), 0o600); err != nil {
		return nil, fmt.Errorf("write typst source: %w", err)
	}

	args := []string{"compile"}
	fontDirs := append([]string(nil), c.FontDirs...)
	if len(c.Fonts) > 0 {
		fontDir := filepath.Join(dir, "fonts")
		if err := writeFonts(fontDir, c.Fonts); err != nil {
			return nil, err
		}
		fontDirs = append(fontDirs, fontDir)
	}
	for _, d := range fontDirs {
		args = append(args, "--font-path", d)
	}
	outPath := filepath.Join(dir, outputFile)
	args = append(args, mainPath, outPath)

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	runner := c.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	bin := c.Bin
	if bin == "" {
		bin = "typst"
	}

	_, stderr, err := runner.Run(ctx, bin, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCompilerNotFound, bin)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoDocument, ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNoDocument, strings.TrimSpace(stderr), err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	if _, err := ValidatePDF(data); err != nil {
		return nil, err
	}
	return data, nil
}

func writeFonts(dir string, fonts []Font) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create font dir: %w", err)
	}
	for i, f := range fonts {
		name := filepath.Base(f.Name)
		if name == "." || name == string(filepath.Separator) || name == "" {
			name = fmt.Sprintf("font-%d.ttf", i)
		}
		if err := os.WriteFile(filepath.Join(dir, name), f.Data, 0o600); err != nil {
			return fmt.Errorf("write font %s: %w", name, err)
		}
	}
	return nil
}

// LoadFonts reads every .ttf, .otf, .ttc and .otc file in dir.
func LoadFonts(dir string) ([]Font, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read font dir: %w", err)
	}
	var fonts []Font
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".ttf", ".otf", ".ttc", ".otc":
		default:
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", e.Name(), err)
		}
		fonts = append(fonts, Font{Name: e.Name(), Data: data})
	}
	return fonts, nil
}
