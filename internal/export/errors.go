package export

import (
	"errors"
	"fmt"
)

// Sentinel errors for the export engine.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrTemplateNotFound  = errors.New("template not found")
)

// Kind classifies a failed export.
type Kind int

const (
	KindTemplateRegister Kind = iota + 1
	KindTemplateRender
	KindMarkdown
	KindDocx
	KindPDF
	KindUnsupportedFormat
)

func (k Kind) String() string {
	switch k {
	case KindTemplateRegister:
		return "Template error"
	case KindTemplateRender:
		return "Render error"
	case KindMarkdown:
		return "Markdown error"
	case KindDocx:
		return "Docx error"
	case KindPDF:
		return "Pdf error"
	case KindUnsupportedFormat:
		return "Unsupported format"
	}
	return "Export error"
}

// Error is the single error returned by a failed export or template call.
type Error struct {
	Kind   Kind
	Format Format // empty for template errors
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindUnsupportedFormat {
		return fmt.Sprintf("%s: %s", e.Kind, e.Format)
	}
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func newError(kind Kind, format Format, err error) *Error {
	return &Error{Kind: kind, Format: format, Err: err}
}
