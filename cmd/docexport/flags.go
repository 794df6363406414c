package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

type cliFlags struct {
	template    string
	data        string
	input       string
	formats     string
	out         string
	name        string
	font        string
	monoFont    string
	size        int
	pdfTemplate string
	fontDir     string
	typst       string
	workers     int
	verbose     bool

	fs *flag.FlagSet
}

// changed reports whether the named flag was set on the command line.
func (f *cliFlags) changed(name string) bool {
	return f.fs.Changed(name)
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("docexport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: docexport (--template FILE [--data FILE] | --input FILE) [options]")
		fs.PrintDefaults()
	}

	fs.StringVarP(&f.template, "template", "t", "", "Markdown template file (Go text/template syntax)")
	fs.StringVarP(&f.data, "data", "d", "", "template data file (.json, .yaml, .yml or .csv)")
	fs.StringVarP(&f.input, "input", "i", "", "Markdown file to export as is (- for stdin)")
	fs.StringVarP(&f.formats, "format", "f", "md,html,docx,pdf", "comma separated output formats")
	fs.StringVarP(&f.out, "out", "o", ".", "output directory")
	fs.StringVarP(&f.name, "name", "n", "", "output base name (default: input file name)")
	fs.StringVar(&f.font, "font", "", "docx body font")
	fs.StringVar(&f.monoFont, "mono-font", "", "docx code font")
	fs.IntVar(&f.size, "size", 0, "docx body size in half-points")
	fs.StringVar(&f.pdfTemplate, "pdf-template", "", "Typst template with a {{content}} placeholder")
	fs.StringVar(&f.fontDir, "font-dir", "", "directory of fonts handed to typst")
	fs.StringVar(&f.typst, "typst", "", "typst binary")
	fs.IntVarP(&f.workers, "workers", "w", 0, "formats exported in parallel (default: from GOMAXPROCS)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if (f.template == "") == (f.input == "") {
		return nil, fmt.Errorf("exactly one of --template and --input is required")
	}
	if f.data != "" && f.template == "" {
		return nil, fmt.Errorf("--data requires --template")
	}
	f.fs = fs
	return f, nil
}
