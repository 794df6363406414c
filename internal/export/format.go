package export

import "strings"

// Format names an output format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatDocx     Format = "docx"
)

// Formats lists every built-in format in a stable order.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatPDF, FormatDocx}

func (f Format) String() string { return string(f) }

// ParseFormat maps a case-insensitive name to a Format. "markdown" is an
// alias of "md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDocx, nil
	}
	return "", newError(KindUnsupportedFormat, Format(s), ErrUnsupportedFormat)
}

// ParseFormats parses a comma separated list, dropping duplicates.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}
