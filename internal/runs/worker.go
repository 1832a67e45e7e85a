// Package runs executes batch generation jobs asynchronously. A run renders
// one deterministic batch into each requested format and stores the outputs
// as immutable blob artifacts under runs/<run-id>/.
package runs

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"quotesynth/internal/blob"
	"quotesynth/internal/engine"
	"quotesynth/internal/render"
	"quotesynth/pkg/quote"
)

// Status describes the lifecycle stage of a batch run.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Artifact captures one stored rendering of a run's batch.
type Artifact struct {
	Key         string        `json:"key"`
	Format      render.Format `json:"format"`
	ContentType string        `json:"content_type"`
	SizeBytes   int64         `json:"size_bytes"`
	Checksum    string        `json:"checksum_sha256"`
	Records     int           `json:"records"`
	URL         string        `json:"url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Run tracks a batch request and its resulting artifacts. Seed and count
// fully determine the record content, so a succeeded run can be reproduced
// from its own metadata.
type Run struct {
	ID          string          `json:"id"`
	Seed        uint64          `json:"seed"`
	Count       int             `json:"count"`
	Formats     []render.Format `json:"formats"`
	Status      Status          `json:"status"`
	Error       string          `json:"error,omitempty"`
	Artifacts   []Artifact      `json:"artifacts,omitempty"`
	RequestedBy string          `json:"requested_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// Request is an enqueue request for the worker.
type Request struct {
	Seed        uint64
	Count       int
	Formats     []render.Format
	Workers     int
	RequestedBy string
}

// Scheduler queues batch runs and exposes their status.
type Scheduler interface {
	Enqueue(ctx context.Context, req Request) (Run, error)
	Get(id string) (Run, bool)
	List() []Run
}

// RunGauge counts runs in flight. *metrics.PromRecorder satisfies it.
type RunGauge interface {
	RunStarted()
	RunFinished()
}

// Worker executes batch runs asynchronously, one at a time.
type Worker struct {
	engine *engine.Engine
	store  blob.Store
	audit  AuditLogger
	gauge  RunGauge

	queue chan task
	mu    sync.RWMutex
	jobs  map[string]*Run

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type task struct {
	id      string
	workers int
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithRunGauge tracks in-flight runs on g.
func WithRunGauge(g RunGauge) WorkerOption {
	return func(w *Worker) { w.gauge = g }
}

// NewWorker constructs a run worker over the given engine and artifact
// store. A nil audit logger disables the audit trail.
func NewWorker(eng *engine.Engine, store blob.Store, audit AuditLogger, opts ...WorkerOption) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		engine: eng,
		store:  store,
		audit:  audit,
		queue:  make(chan task, 32),
		jobs:   make(map[string]*Run),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins processing queued runs.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop cancels in-flight work and waits for the loop to exit.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case t := <-w.queue:
			w.process(t)
		}
	}
}

// Enqueue validates the request, registers a queued run and schedules it.
// The returned record is a snapshot; poll Get for progress.
func (w *Worker) Enqueue(ctx context.Context, req Request) (Run, error) {
	if w.engine == nil {
		return Run{}, fmt.Errorf("runs: engine not configured")
	}
	if req.Count <= 0 {
		return Run{}, fmt.Errorf("runs: record count must be positive, got %d", req.Count)
	}

	formats := req.Formats
	if len(formats) == 0 {
		formats = []render.Format{render.FormatJSONL}
	}
	uniq := make([]render.Format, 0, len(formats))
	seen := make(map[render.Format]struct{}, len(formats))
	for _, format := range formats {
		if _, dup := seen[format]; dup {
			continue
		}
		if _, err := render.ParseFormat(string(format)); err != nil {
			return Run{}, err
		}
		uniq = append(uniq, format)
		seen[format] = struct{}{}
	}

	now := time.Now().UTC()
	run := Run{
		ID:          uuid.NewString(),
		Seed:        req.Seed,
		Count:       req.Count,
		Formats:     uniq,
		Status:      StatusQueued,
		RequestedBy: req.RequestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	w.mu.Lock()
	w.jobs[run.ID] = &run
	queued := run.copy()
	w.mu.Unlock()

	w.recordAudit(ctx, queued, "")

	select {
	case w.queue <- task{id: run.ID, workers: req.Workers}:
	default:
		w.mu.Lock()
		delete(w.jobs, run.ID)
		w.mu.Unlock()
		return Run{}, fmt.Errorf("runs: queue full")
	}

	return queued, nil
}

// Get returns a snapshot of the run record.
func (w *Worker) Get(id string) (Run, bool) {
	w.mu.RLock()
	record, ok := w.jobs[id]
	if !ok {
		w.mu.RUnlock()
		return Run{}, false
	}
	snapshot := record.copy()
	w.mu.RUnlock()
	return snapshot, true
}

// List returns snapshots of all known runs, oldest first.
func (w *Worker) List() []Run {
	w.mu.RLock()
	out := make([]Run, 0, len(w.jobs))
	for _, record := range w.jobs {
		out = append(out, record.copy())
	}
	w.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (w *Worker) process(t task) {
	run, ok := w.Get(t.id)
	if !ok {
		return
	}
	if w.gauge != nil {
		w.gauge.RunStarted()
		defer w.gauge.RunFinished()
	}
	w.setRunning(t.id)

	artifacts := make([]Artifact, 0, len(run.Formats))
	for _, format := range run.Formats {
		artifact, err := w.renderArtifact(run, format, t.workers)
		if err != nil {
			w.fail(t.id, err.Error())
			return
		}
		artifacts = append(artifacts, artifact)
	}
	w.complete(t.id, artifacts)
}

// renderArtifact streams the run's batch through the format writer and
// stores the result. The checksum covers the complete payload including any
// footer the writer emits on Close.
func (w *Worker) renderArtifact(run Run, format render.Format, workers int) (Artifact, error) {
	var buf bytes.Buffer
	sum := sha256.New()
	rw, err := render.NewWriter(format, io.MultiWriter(&buf, sum))
	if err != nil {
		return Artifact{}, err
	}

	records := 0
	if err := w.engine.Stream(w.ctx, run.Seed, run.Count, workers, func(q quote.Quote) error {
		if err := rw.Write(q); err != nil {
			return err
		}
		records++
		return nil
	}); err != nil {
		return Artifact{}, fmt.Errorf("render %s: %w", format, err)
	}
	if err := rw.Close(); err != nil {
		return Artifact{}, fmt.Errorf("render %s: %w", format, err)
	}
	checksum := hex.EncodeToString(sum.Sum(nil))

	if w.store == nil {
		return Artifact{}, fmt.Errorf("runs: artifact store not configured")
	}
	key := fmt.Sprintf("runs/%s/quotes.%s", run.ID, format.Ext())
	info, err := w.store.Put(w.ctx, key, &buf, blob.PutOptions{
		ContentType: format.ContentType(),
		Metadata: map[string]string{
			"run_id":          run.ID,
			"seed":            strconv.FormatUint(run.Seed, 10),
			"records":         strconv.Itoa(records),
			"checksum_sha256": checksum,
		},
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("store %s artifact: %w", format, err)
	}

	artifact := Artifact{
		Key:         info.Key,
		Format:      format,
		ContentType: info.ContentType,
		SizeBytes:   info.Size,
		Checksum:    checksum,
		Records:     records,
		CreatedAt:   info.LastModified,
	}
	if artifact.ContentType == "" {
		artifact.ContentType = format.ContentType()
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now().UTC()
	}

	url, err := w.store.PresignURL(w.ctx, key, blob.SignedURLOptions{Method: http.MethodGet})
	switch {
	case err == nil:
		artifact.URL = url
	case errors.Is(err, blob.ErrUnsupported):
	default:
		return Artifact{}, fmt.Errorf("presign %s artifact: %w", format, err)
	}
	return artifact, nil
}

// transition applies mutate to the run under the lock and returns a
// snapshot. UpdatedAt is stamped after mutate so every transition moves it.
func (w *Worker) transition(id string, mutate func(*Run, time.Time)) (Run, bool) {
	now := time.Now().UTC()
	w.mu.Lock()
	record, ok := w.jobs[id]
	if !ok {
		w.mu.Unlock()
		return Run{}, false
	}
	mutate(record, now)
	record.UpdatedAt = now
	snapshot := record.copy()
	w.mu.Unlock()
	return snapshot, true
}

func (w *Worker) setRunning(id string) {
	run, ok := w.transition(id, func(r *Run, _ time.Time) {
		r.Status = StatusRunning
		r.Error = ""
	})
	if ok {
		w.recordAudit(w.ctx, run, "")
	}
}

func (w *Worker) complete(id string, artifacts []Artifact) {
	run, ok := w.transition(id, func(r *Run, now time.Time) {
		r.Status = StatusSucceeded
		r.Error = ""
		r.Artifacts = artifacts
		r.CompletedAt = &now
	})
	if ok {
		w.recordAudit(w.ctx, run, "")
	}
}

func (w *Worker) fail(id, reason string) {
	run, ok := w.transition(id, func(r *Run, now time.Time) {
		r.Status = StatusFailed
		r.Error = reason
		r.CompletedAt = &now
	})
	if ok {
		w.recordAudit(w.ctx, run, reason)
	}
}

func (w *Worker) recordAudit(ctx context.Context, run Run, note string) {
	if w.audit == nil {
		return
	}
	w.audit.Record(ctx, AuditEntry{
		RunID:      run.ID,
		Status:     run.Status,
		Actor:      run.RequestedBy,
		Note:       note,
		OccurredAt: run.UpdatedAt,
	})
}

func (r Run) copy() Run {
	dup := r
	dup.Formats = append([]render.Format(nil), r.Formats...)
	if len(r.Artifacts) > 0 {
		dup.Artifacts = append([]Artifact(nil), r.Artifacts...)
	}
	return dup
}
