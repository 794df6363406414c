package export

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStats_Percentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(FormatPDF, time.Duration(ms)*time.Millisecond, false)
	}

	snap := stats.Snapshot()[FormatPDF]
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Errorf("expected min=100 max=500, got %d/%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Errorf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Errorf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Errorf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Errorf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStats_FailuresAndFormatsSeparate(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(FormatDocx, 10*time.Millisecond, false)
	stats.Record(FormatDocx, 50*time.Millisecond, true)
	stats.Record(FormatHTML, -time.Second, false)

	snaps := stats.Snapshot()
	docx := snaps[FormatDocx]
	if docx.Count != 1 || docx.Failures != 1 || docx.MaxMs != 10 {
		t.Errorf("unexpected docx snapshot %+v", docx)
	}
	if html := snaps[FormatHTML]; html.Count != 1 || html.MinMs != 0 {
		t.Errorf("expected negative duration clamped, got %+v", html)
	}
	if _, ok := snaps[FormatPDF]; ok {
		t.Error("expected no entry for a format without samples")
	}
}

func TestStats_PrunesExpiredSamples(t *testing.T) {
	stats := NewStats(time.Minute)
	now := time.Now()
	stats.now = func() time.Time { return now }
	stats.Record(FormatMarkdown, time.Millisecond, false)

	now = now.Add(2 * time.Minute)
	if snaps := stats.Snapshot(); len(snaps) != 0 {
		t.Fatalf("expected samples pruned, got %+v", snaps)
	}

	stats.Record(FormatMarkdown, 2*time.Millisecond, false)
	if snap := stats.Snapshot()[FormatMarkdown]; snap.Count != 1 || snap.MinMs != 2 {
		t.Errorf("expected one fresh sample, got %+v", snap)
	}
}

func TestEngine_RecordsStats(t *testing.T) {
	e := newTestEngine(nil)
	e.Register(FormatPDF, ExporterFunc(func(context.Context, string) (Exported, error) {
		return Exported{}, errors.New("boom")
	}))
	if _, err := e.Convert(context.Background(), "x", FormatMarkdown); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = e.Convert(context.Background(), "x", FormatPDF)
	_, _ = e.Convert(context.Background(), "x", "odt")

	snaps := e.Stats()
	if snaps[FormatMarkdown].Count != 1 {
		t.Errorf("expected one markdown sample, got %+v", snaps[FormatMarkdown])
	}
	if snaps[FormatPDF].Failures != 1 {
		t.Errorf("expected one pdf failure, got %+v", snaps[FormatPDF])
	}
	if _, ok := snaps["odt"]; ok {
		t.Error("expected rejected formats not recorded")
	}
}
