package typst

import (
	"strings"
	"testing"

	"github.com/dgallion1/docexport/internal/mdast"
)

func source(t *testing.T, src string) string {
	t.Helper()
	root, err := mdast.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return NewRenderer("").Source(root)
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"#tag", `\#tag`},
		{"{a}", `\{a\}`},
		{"[x]", `\[x\]`},
		{"a*b_c", `a\*b\_c`},
		{`C:\#tag`, `C:\\\#tag`},
		{`a\{b}`, `a\\\{b\}`},
		{"price $5 and 2 * 3", `price \$5 and 2 \* 3`},
		{"mail @ref <lbl>", `mail \@ref \<lbl\>`},
		{"use `x`", "use \\`x\\`"},
		{"a~b", `a\~b`},
		{"see http://x /* y", `see http:\//x \/\* y`},
		{"a/b", "a/b"},
		{"//x", `\//x`},
		{"a\n/* y", "a\n\\/\\* y"},
		{"a\n= b", "a\n\\= b"},
		{"a\n  - b\n+ c", "a\n  \\- b\n\\+ c"},
		{"a\n12. b", "a\n\\12. b"},
		{"a\n/ term: x", "a\n\\/ term: x"},
		{"x = y - z", "x = y - z"},
		{"12 apples", "12 apples"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeText(tt.in); got != tt.want {
			t.Errorf("EscapeText(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestRender_ReservedCharactersEscaped(t *testing.T) {
	for _, ch := range []string{"{", "}", "[", "]", "#", "\\", "$", "*", "_", "@", "<", ">", "`", "~"} {
		root := &mdast.Root{Children: []mdast.Node{
			&mdast.Paragraph{Children: []mdast.Node{&mdast.Text{Value: "a" + ch + "b"}}},
		}}
		got := NewRenderer("").Source(root)
		if want := "a\\" + ch + "b\n\n"; got != want {
			t.Errorf("char %q: expected %q, got %q", ch, want, got)
		}
	}
}

func TestRawInline(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"x", "`x`"},
		{"a`b", "``` a`b ```"},
		{"``` fence", "```` ``` fence ````"},
		{"", "``"},
	}
	for _, tt := range tests {
		if got := RawInline(tt.in); got != tt.want {
			t.Errorf("RawInline(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestDefuseFence(t *testing.T) {
	got := DefuseFence("a```b``````c")
	if strings.Contains(got, "```") {
		t.Errorf("expected no literal fence left, got %q", got)
	}
	if want := "a`\u200b``b`\u200b`\u200b``\u200b``c"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_Heading(t *testing.T) {
	got := source(t, "## Intro #2")
	if want := "\n== Intro \\#2\n\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_ParagraphMarkup(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"strong and emphasis", "**b** and *i*", "*b* and _i_\n\n"},
		{"nested", "***both***", "_*both*_\n\n"},
		{"inline code", "use `x[0]` here", "use `x[0]` here\n\n"},
		{"inline code with backtick", "run ``a`b`` now", "run ``` a`b ``` now\n\n"},
		{"heading marker after soft break", "a\n= b", "a\n\\= b\n\n"},
		{"hard break", "a  \nb", "a \\\nb\n\n"},
		{"soft break kept", "a\nb", "a\nb\n\n"},
		{"link flattened", "see [docs](http://x)", "see docs\n\n"},
		{"bold first line not promoted", "**Title**\nBody", "*Title*\nBody\n\n"},
	}
	for _, tt := range tests {
		if got := source(t, tt.src); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestRender_BlankParagraphDropped(t *testing.T) {
	root := &mdast.Root{Children: []mdast.Node{
		&mdast.Paragraph{Children: []mdast.Node{&mdast.Text{Value: "  \n "}}},
		&mdast.Paragraph{},
	}}
	if got := NewRenderer("").Source(root); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRender_CodeBlock(t *testing.T) {
	got := source(t, "```go\nx := 1\n```")
	if want := "```go\nx := 1\n```\n\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	got = source(t, "    plain\n")
	if want := "```\nplain\n```\n\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_FenceInsideCodeClosesOnce(t *testing.T) {
	got := source(t, "~~~md\nbefore\n```\ninside\n```\n~~~\n")
	if n := strings.Count(got, "```"); n != 2 {
		t.Fatalf("expected fence to open and close once, found %d fences in %q", n, got)
	}
	if !strings.HasPrefix(got, "```md\n") || !strings.HasSuffix(got, "\n```\n\n") {
		t.Errorf("unexpected fence placement in %q", got)
	}
	if !strings.Contains(got, "inside") {
		t.Errorf("expected body preserved, got %q", got)
	}
}

func TestRender_Lists(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"nested ordered", "1. A\n   1. B\n2. C", "1. A\n  1. B\n2. C\n\n"},
		{"bullets", "- x\n- y\n", "- x\n- y\n\n"},
		{"start value", "4. four\n5. five\n", "4. four\n5. five\n\n"},
		{"nested bullets under ordered", "1. A\n   - a1\n   - a2\n", "1. A\n  - a1\n  - a2\n\n"},
		{"loose item paragraphs", "- one\n\n  two\n", "- one two\n\n"},
	}
	for _, tt := range tests {
		if got := source(t, tt.src); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestRender_UnknownBlocksDropped(t *testing.T) {
	got := source(t, "> quoted\n\n---\n\nkept")
	if got != "kept\n\n" {
		t.Errorf("expected only the paragraph, got %q", got)
	}
}

func TestInject_ReplacesFirstPlaceholderOnly(t *testing.T) {
	got := Inject("a {{content}} b {{content}}", "X")
	if want := "a X b {{content}}"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := Inject("no placeholder", "X"); got != "no placeholder" {
		t.Errorf("expected template unchanged, got %q", got)
	}
}

func TestRenderer_DocumentUsesTemplate(t *testing.T) {
	root := &mdast.Root{Children: []mdast.Node{
		&mdast.Heading{Depth: 1, Children: []mdast.Node{&mdast.Text{Value: "T"}}},
	}}

	doc := NewRenderer("").Document(root)
	if !strings.Contains(doc, `#set page(paper: "a4")`) {
		t.Errorf("expected default template, got %q", doc)
	}
	if !strings.Contains(doc, "\n= T\n") {
		t.Errorf("expected heading injected, got %q", doc)
	}
	if strings.Contains(doc, Placeholder) {
		t.Errorf("expected placeholder replaced, got %q", doc)
	}

	custom := NewRenderer("#set text(8pt)\n{{content}}").Document(root)
	if custom != "#set text(8pt)\n\n= T\n\n" {
		t.Errorf("unexpected custom document %q", custom)
	}
}

func TestRender_StrayInlineAtBlockLevel(t *testing.T) {
	root := &mdast.Root{Children: []mdast.Node{
		&mdast.Strong{Children: []mdast.Node{&mdast.Text{Value: "loud"}}},
		&mdast.Text{Value: "$x"},
		&mdast.Break{},
	}}
	got := NewRenderer("").Source(root)
	if want := "*loud*\n\n\\$x\n\n \\\n\n\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
