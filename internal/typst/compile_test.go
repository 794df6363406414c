package typst

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner records the invocation and optionally writes Output to the
// last argument, which is where the compiler expects the PDF.
type fakeRunner struct {
	Output     []byte
	Stderr     string
	Err        error
	CalledWith []string
	Source     string
	FontFiles  []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	f.CalledWith = append([]string{name}, args...)
	for i, a := range args {
		switch {
		case strings.HasSuffix(a, mainFile):
			data, _ := os.ReadFile(a)
			f.Source = string(data)
		case a == "--font-path" && i+1 < len(args):
			entries, _ := os.ReadDir(args[i+1])
			for _, e := range entries {
				f.FontFiles = append(f.FontFiles, e.Name())
			}
		}
	}
	if f.Output != nil {
		if err := os.WriteFile(args[len(args)-1], f.Output, 0o600); err != nil {
			return "", "", err
		}
	}
	return "", f.Stderr, f.Err
}

func TestCLICompiler_Success(t *testing.T) {
	runner := &fakeRunner{Output: onePagePDF()}
	c := &CLICompiler{Bin: "typst", Runner: runner}

	data, err := c.Compile(context.Background(), "= Hello\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != string(onePagePDF()) {
		t.Error("expected compiled bytes returned unchanged")
	}
	if runner.Source != "= Hello\n" {
		t.Errorf("expected source written to %s, got %q", mainFile, runner.Source)
	}
	if len(runner.CalledWith) != 4 || runner.CalledWith[0] != "typst" || runner.CalledWith[1] != "compile" {
		t.Errorf("unexpected invocation %v", runner.CalledWith)
	}
	if filepath.Base(runner.CalledWith[3]) != outputFile {
		t.Errorf("expected output path last, got %v", runner.CalledWith)
	}
}

func TestCLICompiler_EmbeddedFontsAndDirs(t *testing.T) {
	runner := &fakeRunner{Output: onePagePDF()}
	c := &CLICompiler{
		Runner:   runner,
		FontDirs: []string{"/usr/share/fonts/custom"},
		Fonts:    []Font{{Name: "NotoSans-Regular.ttf", Data: []byte("font")}, {Name: "", Data: []byte("x")}},
	}
	if _, err := c.Compile(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(runner.CalledWith, " ")
	if !strings.Contains(joined, "--font-path /usr/share/fonts/custom") {
		t.Errorf("expected configured font dir passed, got %v", runner.CalledWith)
	}
	if strings.Count(joined, "--font-path") != 2 {
		t.Errorf("expected 2 font paths, got %v", runner.CalledWith)
	}
	if len(runner.FontFiles) != 2 {
		t.Fatalf("expected 2 embedded font files, got %v", runner.FontFiles)
	}
	if runner.FontFiles[0] != "NotoSans-Regular.ttf" && runner.FontFiles[1] != "NotoSans-Regular.ttf" {
		t.Errorf("expected embedded font written by name, got %v", runner.FontFiles)
	}
	if runner.CalledWith[0] != "typst" {
		t.Errorf("expected default binary name, got %q", runner.CalledWith[0])
	}
}

func TestCLICompiler_Failures(t *testing.T) {
	tests := []struct {
		name    string
		runner  *fakeRunner
		wantErr error
		wantMsg string
	}{
		{
			name:    "compiler error carries stderr",
			runner:  &fakeRunner{Stderr: "error: unknown variable: foo\n", Err: errors.New("exit status 1")},
			wantErr: ErrNoDocument,
			wantMsg: "unknown variable: foo",
		},
		{
			name:    "no output file",
			runner:  &fakeRunner{},
			wantErr: ErrNoDocument,
		},
		{
			name:    "output is not a pdf",
			runner:  &fakeRunner{Output: []byte("garbage")},
			wantErr: ErrInvalidPDF,
		},
		{
			name:    "binary missing",
			runner:  &fakeRunner{Err: &exec.Error{Name: "typst", Err: exec.ErrNotFound}},
			wantErr: ErrCompilerNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CLICompiler{Bin: "typst", Runner: tt.runner}
			data, err := c.Compile(context.Background(), "x")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if data != nil {
				t.Errorf("expected no bytes on failure, got %d", len(data))
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error to contain %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestCLICompiler_RemovesScratchDir(t *testing.T) {
	runner := &fakeRunner{Output: onePagePDF()}
	c := &CLICompiler{Runner: runner}
	if _, err := c.Compile(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := filepath.Dir(runner.CalledWith[len(runner.CalledWith)-1])
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected scratch dir %s removed, stat err %v", dir, err)
	}
}

func TestLoadFonts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ttf", "b.OTF", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	fonts, err := LoadFonts(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fonts) != 2 {
		t.Fatalf("expected 2 fonts, got %d", len(fonts))
	}
	if _, err := LoadFonts(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing dir")
	}
}
