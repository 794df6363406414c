package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/docexport/internal/export"
)

// JobStatus represents the state of an export job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusRendering JobStatus = "rendering"
	StatusExporting JobStatus = "exporting"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Request describes the work of one job: either a registered template
// with data, or raw Markdown.
type Request struct {
	Template string
	Data     any
	Markdown string
	Formats  []export.Format
	Name     string
}

// Job tracks the state of a single asynchronous export.
type Job struct {
	mu sync.Mutex

	ID      string          `json:"job_id"`
	Name    string          `json:"name"`
	Formats []export.Format `json:"formats"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	template string
	data     any
	markdown string
	results  map[export.Format]export.Exported
	errors   []FormatError
}

// Progress tracks how many formats have finished.
type Progress struct {
	FormatsTotal int           `json:"formats_total"`
	FormatsDone  int           `json:"formats_done"`
	Errors       []FormatError `json:"errors"`
}

// FormatError is the failure of one format, or of the whole job when
// Format is empty.
type FormatError struct {
	Format  export.Format `json:"format,omitempty"`
	Kind    string        `json:"kind"`
	Message string        `json:"message"`
}

// ResultInfo describes a finished payload without its bytes.
type ResultInfo struct {
	Format    export.Format `json:"format"`
	MediaType string        `json:"media_type"`
	Size      int           `json:"size"`
}

// NewJob returns a queued job with a fresh ID.
func NewJob(req Request) *Job {
	now := time.Now()
	name := req.Name
	if name == "" {
		name = "document"
	}
	return &Job{
		ID:        uuid.NewString(),
		Name:      name,
		Formats:   req.Formats,
		Status:    StatusQueued,
		Phase:     "queued",
		Progress:  Progress{FormatsTotal: len(req.Formats)},
		CreatedAt: now,
		UpdatedAt: now,
		template:  req.Template,
		data:      req.Data,
		markdown:  req.Markdown,
		results:   make(map[export.Format]export.Exported),
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of stored jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// State returns the current status and phase.
func (j *Job) State() (JobStatus, string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.Status, j.Phase
}

// AddError records a failure. An empty format marks a job-level failure
// that does not count towards format progress.
func (j *Job) AddError(format export.Format, err error) {
	kind := "Error"
	if k, ok := export.KindOf(err); ok {
		kind = k.String()
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, FormatError{Format: format, Kind: kind, Message: err.Error()})
	j.Progress.Errors = j.errors
	if format != "" {
		j.Progress.FormatsDone++
	}
	j.UpdatedAt = time.Now()
}

// SetResult stores the payload for format.
func (j *Job) SetResult(format export.Format, out export.Exported) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results[format] = out
	j.Progress.FormatsDone++
	j.UpdatedAt = time.Now()
}

// Result returns the payload for format if it finished successfully.
func (j *Job) Result(format export.Format) (export.Exported, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out, ok := j.results[format]
	return out, ok
}

// SetContentHash records the hash of the rendered Markdown.
func (j *Job) SetContentHash(h string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = h
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string          `json:"job_id"`
	Name        string          `json:"name"`
	Formats     []export.Format `json:"formats"`
	Status      JobStatus       `json:"status"`
	Phase       string          `json:"phase"`
	ContentHash string          `json:"content_hash,omitempty"`
	Progress    Progress        `json:"progress"`
	Results     []ResultInfo    `json:"results"`
}

// Snapshot returns a JSON-safe copy of the job state. Results follow the
// order of Formats.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]FormatError, len(j.errors))
	copy(errs, j.errors)
	results := []ResultInfo{}
	for _, f := range j.Formats {
		if out, ok := j.results[f]; ok {
			results = append(results, ResultInfo{Format: f, MediaType: out.MediaType, Size: len(out.Data)})
		}
	}
	return JobSnapshot{
		ID:          j.ID,
		Name:        j.Name,
		Formats:     append([]export.Format(nil), j.Formats...),
		Status:      j.Status,
		Phase:       j.Phase,
		ContentHash: j.ContentHash,
		Progress: Progress{
			FormatsTotal: j.Progress.FormatsTotal,
			FormatsDone:  j.Progress.FormatsDone,
			Errors:       errs,
		},
		Results: results,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
