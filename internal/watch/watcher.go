package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scrapedash/internal/entity"
	"scrapedash/internal/service"
)

var (
	ErrNoRun         = errors.New("actor has no runs")
	ErrRunSuperseded = errors.New("a newer run was started")
)

// LastJobSource is satisfied by service.JobService.
type LastJobSource interface {
	LastJob(ctx context.Context) service.Result[entity.Job]
}

// Watcher polls the actor's last run until it reaches a terminal status.
type Watcher struct {
	src      LastJobSource
	interval time.Duration
	log      *slog.Logger
}

func NewWatcher(src LastJobSource, interval time.Duration, log *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{src: src, interval: interval, log: log}
}

// Run blocks until the watched run finishes, ctx is done, or a lookup fails.
// With an empty runID it follows whatever run is last. onChange is called
// for the first observation and for every status change after it.
func (w *Watcher) Run(ctx context.Context, runID string, onChange func(entity.Job)) (entity.Job, error) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var last entity.JobStatus
	for {
		job, done, err := w.poll(ctx, runID)
		if err != nil {
			return entity.Job{}, err
		}
		if job != nil {
			if job.Status != last {
				w.log.InfoContext(ctx, "run status", "run_id", job.ID, "status", job.Status)
				if onChange != nil {
					onChange(*job)
				}
				last = job.Status
			}
			if done {
				return *job, nil
			}
		}

		select {
		case <-ctx.Done():
			return entity.Job{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Watcher) poll(ctx context.Context, runID string) (*entity.Job, bool, error) {
	res := w.src.LastJob(ctx)
	switch res.Kind {
	case service.KindFailure:
		return nil, false, fmt.Errorf("poll last run: %w", res.Err)
	case service.KindAbsent:
		if runID == "" {
			return nil, false, ErrNoRun
		}
		// the run may not be listed yet
		return nil, false, nil
	}

	job := res.Value
	if runID != "" && job.ID != runID {
		return nil, false, fmt.Errorf("%w: watching %s, last is %s", ErrRunSuperseded, runID, job.ID)
	}
	return &job, job.Status.Terminal(), nil
}
