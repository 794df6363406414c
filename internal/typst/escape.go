// Package typst renders a Markdown tree into Typst markup and compiles it to
// PDF with the typst command-line compiler.
package typst

import "strings"

// zeroWidthSpace breaks up a literal fence inside raw text.
const zeroWidthSpace = "\u200b"

const fence = "```"

// markupChars are the characters that open Typst markup anywhere in a line.
const markupChars = "\\#{}[]$*_@<>`~"

// EscapeText prefixes every character that Typst would read as markup with
// a backslash, so the text always renders literally. The backslash itself
// is escaped first. Line-start markers (= - + / and "N.") are escaped at
// the start of s and after every newline, and "//" or "/*" never opens a
// comment.
func EscapeText(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	lineStart := true
	rs := []rune(s)
	for i, r := range rs {
		if lineStart && (r == ' ' || r == '\t') {
			b.WriteRune(r)
			continue
		}
		switch {
		case lineStart && isLineMarker(rs, i):
			b.WriteByte('\\')
		case strings.ContainsRune(markupChars, r):
			b.WriteByte('\\')
		case r == '/' && i+1 < len(rs) && (rs[i+1] == '/' || rs[i+1] == '*'):
			b.WriteByte('\\')
		}
		lineStart = r == '\n'
		b.WriteRune(r)
	}
	return b.String()
}

// isLineMarker reports whether rs[i] starts a heading, list, term or
// numbered-list marker.
func isLineMarker(rs []rune, i int) bool {
	switch rs[i] {
	case '=', '-', '+', '/':
		return true
	}
	if rs[i] < '0' || rs[i] > '9' {
		return false
	}
	j := i
	for j < len(rs) && rs[j] >= '0' && rs[j] <= '9' {
		j++
	}
	return j < len(rs) && rs[j] == '.'
}

// DefuseFence inserts a zero-width space after the first backtick of every
// "```" so the sequence cannot close an enclosing raw block. Longer runs are
// split until no three backticks remain adjacent.
func DefuseFence(s string) string {
	for strings.Contains(s, fence) {
		s = strings.ReplaceAll(s, fence, "`"+zeroWidthSpace+"``")
	}
	return s
}

// RawInline wraps s in an inline raw span. A value containing backticks
// gets a fence longer than its longest backtick run, padded with spaces so
// no language tag is read.
func RawInline(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	if longest == 0 {
		return "`" + s + "`"
	}
	f := strings.Repeat("`", max(3, longest+1))
	return f + " " + s + " " + f
}
