package export

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
	failed     bool
}

// LatencySnapshot aggregates the recent exports of one format.
type LatencySnapshot struct {
	Count    int     `json:"count"`
	Failures int     `json:"failures"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

// Stats tracks export latencies per format within a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples map[Format][]sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples: make(map[Format][]sample),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Record adds one export of format.
func (s *Stats) Record(format Format, d time.Duration, failed bool) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(format, now)
	s.samples[format] = append(s.samples[format], sample{timestamp: now, durationMs: ms, failed: failed})
}

// Snapshot returns the aggregate for every format with samples in the
// window. Failed exports count towards Failures only.
func (s *Stats) Snapshot() map[Format]LatencySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make(map[Format]LatencySnapshot)
	for f := range s.samples {
		s.pruneLocked(f, now)
		if snap, ok := aggregate(s.samples[f]); ok {
			out[f] = snap
		}
	}
	return out
}

func aggregate(samples []sample) (LatencySnapshot, bool) {
	if len(samples) == 0 {
		return LatencySnapshot{}, false
	}
	var snap LatencySnapshot
	values := make([]int64, 0, len(samples))
	var sum int64
	for _, sm := range samples {
		if sm.failed {
			snap.Failures++
			continue
		}
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	if len(values) == 0 {
		return snap, true
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap, true
}

func (s *Stats) pruneLocked(format Format, now time.Time) {
	cutoff := now.Add(-s.maxAge)
	kept := s.samples[format][:0]
	for _, sm := range s.samples[format] {
		if !sm.timestamp.Before(cutoff) {
			kept = append(kept, sm)
		}
	}
	if len(kept) == 0 {
		delete(s.samples, format)
		return
	}
	s.samples[format] = kept
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[upper])
	return lo + ((hi - lo) * weight)
}
