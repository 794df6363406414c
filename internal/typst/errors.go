package typst

import "errors"

// Sentinel errors for PDF compilation.
var (
	ErrNoDocument       = errors.New("typst output error")
	ErrInvalidPDF       = errors.New("typst pdf rendering error")
	ErrCompilerNotFound = errors.New("typst compiler not found")
)
