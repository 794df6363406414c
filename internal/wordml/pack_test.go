package wordml

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestPack_RoundTrip(t *testing.T) {
	doc := render(t, "# Title\n\nHello **bold** world.\n\n1. first\n   - nested\n")

	var buf bytes.Buffer
	if err := Pack(doc, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Fatalf("expected a zip container, got prefix %q", buf.Bytes()[:4])
	}

	paras, err := Inspect(buf.Bytes())
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(paras) != 4 {
		t.Fatalf("expected 4 paragraphs, got %d", len(paras))
	}

	wantText := []string{"Title", "Hello bold world.", "1. first", "• nested"}
	for i, want := range wantText {
		if paras[i].Text != want {
			t.Errorf("paragraph %d: expected %q, got %q", i, want, paras[i].Text)
		}
	}

	if got := paras[0].Runs[0].Size; got != 35 {
		t.Errorf("expected heading size 35, got %d", got)
	}
	if got := paras[0].Runs[0].Font; got != "Times New Roman" {
		t.Errorf("expected body font, got %q", got)
	}
	if !paras[1].Runs[1].Bold || paras[1].Runs[0].Bold {
		t.Errorf("expected only the middle run bold, got %+v", paras[1].Runs)
	}
	if paras[2].LeftIndent != 720 || paras[2].HangingIndent != 360 {
		t.Errorf("expected indent 720/360, got %d/%d", paras[2].LeftIndent, paras[2].HangingIndent)
	}
	if paras[3].LeftIndent != 1080 {
		t.Errorf("expected nested indent 1080, got %d", paras[3].LeftIndent)
	}
}

func TestPack_SpacingAfterFoldsIntoNextBefore(t *testing.T) {
	doc := Document{Paragraphs: []Paragraph{
		{Runs: []Run{{Text: "a", Size: 22}}, SpacingBefore: 360, SpacingAfter: 180},
		{Runs: []Run{{Text: "b", Size: 22}}, SpacingBefore: 0, SpacingAfter: 160},
		{Runs: []Run{{Text: "c", Size: 22}}, SpacingBefore: 100},
	}}
	var buf bytes.Buffer
	if err := Pack(doc, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paras, err := Inspect(buf.Bytes())
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	want := []int{360, 180, 260}
	for i, w := range want {
		if paras[i].SpacingBefore != w {
			t.Errorf("paragraph %d: expected before %d, got %d", i, w, paras[i].SpacingBefore)
		}
	}
}

func TestPack_BreaksAndSpacesSurvive(t *testing.T) {
	doc := Document{Paragraphs: []Paragraph{{Runs: []Run{
		{Text: "1. ", Bold: true, Size: 22},
		{Text: "x", Size: 22},
		{Break: true},
		{Text: "  y", Mono: true, Font: "Courier New", Size: 22},
	}}}}
	var buf bytes.Buffer
	if err := Pack(doc, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paras, err := Inspect(buf.Bytes())
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if got := paras[0].Text; got != "1. x\n  y" {
		t.Errorf("expected %q, got %q", "1. x\n  y", got)
	}
	if got := paras[0].Runs[3].Font; got != "Courier New" {
		t.Errorf("expected mono font, got %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestPack_WriterError(t *testing.T) {
	err := Pack(Document{}, failingWriter{})
	if err == nil {
		t.Fatal("expected error from failing writer")
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("expected wrapped writer error, got %v", err)
	}
}

func TestInspect_RejectsGarbage(t *testing.T) {
	if _, err := Inspect([]byte("not a zip")); err == nil {
		t.Fatal("expected error for non-docx input")
	}
}
