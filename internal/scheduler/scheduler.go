// Package scheduler provides the delayed one-shot trigger that runs the
// analysis worker a fixed time after a photo upload completes.
package scheduler

import (
	"context"
	"time"
)

// Job is a scheduled analysis invocation for a single photo.
type Job struct {
	ID      string
	PhotoID string
}

// Trigger schedules a one-shot invocation of the analysis worker.
// Scheduling is fire-and-forget; delivery is at-least-once and a scheduled
// job cannot be cancelled.
type Trigger interface {
	Schedule(ctx context.Context, photoID string, delay time.Duration) (Job, error)
}

// Handler processes one due job. Errors are the handler's own problem: the
// scheduler performs no retries, matching the one-shot contract.
type Handler func(ctx context.Context, job Job)
