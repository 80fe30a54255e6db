package usagereset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	"github.com/jekabolt/grbpwr-deals/internal/entity"
)

// stopGrace is how long Stop waits for an in-flight run before returning.
const stopGrace = 30 * time.Second

type runner interface {
	RunScheduled(ctx context.Context, day time.Time) (*entity.UsageResetResult, error)
}

// Scheduler runs the reset job every day at midnight in the job's timezone.
// It owns at most one timer. Start while running and Stop while stopped
// are no-ops.
type Scheduler struct {
	job runner
	loc *time.Location

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
	grace time.Duration

	mu     sync.Mutex
	state  entity.SchedulerState
	next   time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

var _ dependency.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a stopped scheduler for job.
func NewScheduler(job *Job) *Scheduler {
	return newScheduler(job, job.Location())
}

func newScheduler(job runner, loc *time.Location) *Scheduler {
	return &Scheduler{
		job:   job,
		loc:   loc,
		now:   time.Now,
		after: time.After,
		grace: stopGrace,
		state: entity.SchedulerStopped,
	}
}

// Start schedules the next run. The scheduler stops when ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == entity.SchedulerRunning {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.state = entity.SchedulerRunning
	s.cancel = cancel
	s.done = done
	s.next = nextMidnight(s.now(), s.loc)

	go s.loop(ctx, done)
	slog.Default().InfoContext(ctx, "usage reset scheduler started",
		slog.Time("next_run", s.next),
	)
}

// Stop cancels the timer and waits up to the grace period for an in-flight
// run to return. A run that ignores cancellation is left to finish on its
// own; its loop exits afterwards without scheduling another tick.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state == entity.SchedulerStopped {
		s.mu.Unlock()
		return
	}
	s.cancel()
	done := s.done
	s.reset()
	s.mu.Unlock()

	t := time.NewTimer(s.grace)
	defer t.Stop()
	select {
	case <-done:
		slog.Default().Info("usage reset scheduler stopped")
	case <-t.C:
		slog.Default().Warn("usage reset scheduler stopped with a run still in flight",
			slog.Duration("waited", s.grace),
		)
	}
}

func (s *Scheduler) State() entity.SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NextRun returns when the next run is due, or the zero time when stopped.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// reset must be called with s.mu held.
func (s *Scheduler) reset() {
	s.state = entity.SchedulerStopped
	s.cancel = nil
	s.done = nil
	s.next = time.Time{}
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.exited(done)

	for {
		s.mu.Lock()
		at := s.next
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-s.after(at.Sub(s.now())):
		}
		if ctx.Err() != nil {
			return
		}

		s.tick(ctx, at)

		s.mu.Lock()
		if s.done == done {
			s.next = nextMidnight(at.Add(time.Minute), s.loc)
		}
		s.mu.Unlock()
	}
}

// exited marks the scheduler stopped when the loop ends because its
// parent context was cancelled rather than through Stop.
func (s *Scheduler) exited(done chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == done {
		s.cancel()
		s.reset()
	}
}

func (s *Scheduler) tick(ctx context.Context, at time.Time) {
	defer func() {
		if r := recover(); r != nil {
			slog.Default().ErrorContext(ctx, "usage reset panicked",
				slog.String("err", fmt.Sprint(r)),
			)
		}
	}()

	res, err := s.job.RunScheduled(ctx, at)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't reset coupon usage",
			slog.String("err", err.Error()),
		)
		return
	}
	if res.Skipped {
		slog.Default().InfoContext(ctx, "usage reset skipped",
			slog.String("run_id", res.RunID),
		)
	}
}

// nextMidnight returns the first midnight in loc strictly after t.
func nextMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}
