package mdast

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlText returns the text content of a raw HTML fragment with the tags
// removed. <br> becomes "\n"; script and style bodies are skipped.
func htmlText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var buf strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way we keep what we have.
			return buf.String()
		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br":
				buf.WriteByte('\n')
			case "script", "style":
				if tt == html.StartTagToken {
					skip++
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			}
		}
	}
}
