package export

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/enhance"
)

// Status represents the current state of an export job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record tracks one export job.
type Record struct {
	ID             string     `json:"id"`
	PresentationID string     `json:"presentation_id"`
	Status         Status     `json:"status"`
	Step           string     `json:"step,omitempty"`
	Percent        int        `json:"percent"`
	Filename       string     `json:"filename,omitempty"`
	Path           string     `json:"path,omitempty"`
	SlideCount     int        `json:"slide_count,omitempty"`
	Enhanced       int        `json:"enhanced,omitempty"`
	Warnings       []string   `json:"warnings,omitempty"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// Jobs runs exports asynchronously and keeps their records in memory.
type Jobs struct {
	mu       sync.RWMutex
	wg       sync.WaitGroup
	records  map[string]*Record
	exporter *Exporter
}

// NewJobs creates a job runner backed by the exporter.
func NewJobs(exporter *Exporter) *Jobs {
	return &Jobs{
		records:  make(map[string]*Record),
		exporter: exporter,
	}
}

// Submit starts an export in the background and returns its record.
// The provided context bounds the whole job; use the server's base
// context, not the request's.
func (j *Jobs) Submit(ctx context.Context, p *deck.Presentation, opts Options) *Record {
	rec := &Record{
		ID:             uuid.New().String(),
		PresentationID: p.ID,
		Status:         StatusQueued,
		CreatedAt:      time.Now().UTC(),
	}

	j.mu.Lock()
	j.records[rec.ID] = rec
	j.mu.Unlock()

	opts.Progress = func(pr enhance.Progress) {
		j.mu.Lock()
		rec.Step = pr.Step
		rec.Percent = pr.Percent
		j.mu.Unlock()
	}

	j.wg.Add(1)
	go j.run(ctx, rec, p, opts)

	return j.snapshot(rec.ID)
}

// Wait blocks until every submitted job has finished.
func (j *Jobs) Wait() {
	j.wg.Wait()
}

func (j *Jobs) run(ctx context.Context, rec *Record, p *deck.Presentation, opts Options) {
	defer j.wg.Done()

	j.mu.Lock()
	rec.Status = StatusRunning
	j.mu.Unlock()

	res, err := j.exporter.Export(ctx, p, opts)

	now := time.Now().UTC()
	j.mu.Lock()
	defer j.mu.Unlock()
	rec.CompletedAt = &now
	if err != nil {
		rec.Status = StatusFailed
		rec.Error = err.Error()
		return
	}
	rec.Status = StatusCompleted
	rec.Percent = 100
	rec.Filename = res.Filename
	rec.Path = res.Path
	rec.SlideCount = res.SlideCount
	rec.Enhanced = res.Enhanced
	rec.Warnings = res.Warnings
}

// Get returns a copy of the record, or an error if unknown.
func (j *Jobs) Get(id string) (*Record, error) {
	rec := j.snapshot(id)
	if rec == nil {
		return nil, fmt.Errorf("export job %s not found", id)
	}
	return rec, nil
}

// List returns copies of all records, newest first.
func (j *Jobs) List() []*Record {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]*Record, 0, len(j.records))
	for _, rec := range j.records {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID < out[b].ID
	})
	return out
}

func (j *Jobs) snapshot(id string) *Record {
	j.mu.RLock()
	defer j.mu.RUnlock()
	rec, ok := j.records[id]
	if !ok {
		return nil
	}
	cp := *rec
	return &cp
}
