package metrics

import (
	"sync"
	"time"
)

type retentionStats struct {
	runs         int
	errors       int
	totalDeleted int
	lastDeleted  int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about submissions and
// retention runs, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu          sync.Mutex
	submissions map[string]int
	retention   retentionStats
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		submissions: make(map[string]int),
		otel:        otel,
	}
}

// RecordSubmission counts a /submit outcome (accepted, rejected or failed).
func (r *Recorder) RecordSubmission(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.submissions[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSubmission(outcome)
	}
}

// RecordRetentionRun tracks one retention pass and how many records it deleted.
func (r *Recorder) RecordRetentionRun(duration time.Duration, deleted int, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.retention.runs++
	r.retention.lastDuration = duration
	if err != nil {
		r.retention.errors++
	} else {
		r.retention.lastDeleted = deleted
		r.retention.totalDeleted += deleted
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRetention(duration, deleted, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Submissions returns how many submissions ended with outcome.
func (r *Recorder) Submissions(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submissions[outcome]
}

// RetentionSnapshot is a copy of the retention counters.
type RetentionSnapshot struct {
	Runs         int
	Errors       int
	TotalDeleted int
	LastDeleted  int
	LastDuration time.Duration
}

// Retention returns a copy of the current retention stats.
func (r *Recorder) Retention() RetentionSnapshot {
	if r == nil {
		return RetentionSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RetentionSnapshot{
		Runs:         r.retention.runs,
		Errors:       r.retention.errors,
		TotalDeleted: r.retention.totalDeleted,
		LastDeleted:  r.retention.lastDeleted,
		LastDuration: r.retention.lastDuration,
	}
}
