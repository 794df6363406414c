package wordml

// Style is the formatting context passed by value down the inline
// recursion. Flags can only be forced on; a descendant never clears them.
type Style struct {
	Bold   bool
	Italic bool
	Mono   bool
	Size   int // 0 means the configured body size
}

// WithBold returns a copy of s with bold forced on.
func (s Style) WithBold() Style {
	s.Bold = true
	return s
}

// WithItalic returns a copy of s with italic forced on.
func (s Style) WithItalic() Style {
	s.Italic = true
	return s
}

// WithMono returns a copy of s in the monospace family.
func (s Style) WithMono() Style {
	s.Mono = true
	return s
}
