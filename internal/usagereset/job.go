// Package usagereset zeroes coupon usage counters once a day.
package usagereset

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
)

const lockPrefix = "usage-reset:"

// Config holds configuration for the usage reset job and its scheduler.
type Config struct {
	Enabled    bool          `mapstructure:"enabled"`
	Timezone   string        `mapstructure:"timezone"`
	LockTTL    time.Duration `mapstructure:"lock_ttl"`
	RunTimeout time.Duration `mapstructure:"run_timeout"` // zero leaves the run bounded only by the driver
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Timezone: "UTC",
		LockTTL:  time.Hour,
	}
}

// Job resets coupon usage counters. A scheduled run first takes the
// per-day lock when a locker is configured; manual runs never do.
type Job struct {
	coupons dependency.Coupons
	locker  dependency.Locker
	c       *Config
	loc     *time.Location
	now     func() time.Time
}

var _ dependency.UsageResetter = (*Job)(nil)

// NewJob creates a new usage reset job. locker may be nil.
func NewJob(c *Config, coupons dependency.Coupons, locker dependency.Locker) (*Job, error) {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.LockTTL <= 0 {
		c.LockTTL = time.Hour
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid usage reset timezone %q: %w", c.Timezone, err)
	}
	return &Job{
		coupons: coupons,
		locker:  locker,
		c:       c,
		loc:     loc,
		now:     time.Now,
	}, nil
}

// Location is the timezone whose midnight triggers a scheduled run.
func (j *Job) Location() *time.Location {
	return j.loc
}

// Run resets usage counters now.
func (j *Job) Run(ctx context.Context) (*entity.UsageResetResult, error) {
	return j.run(ctx)
}

// RunScheduled resets usage counters for the run due on day unless
// another process already holds that day's lock. Lock errors don't
// prevent the run since resetting twice leaves the same state.
func (j *Job) RunScheduled(ctx context.Context, day time.Time) (*entity.UsageResetResult, error) {
	if j.locker == nil {
		return j.run(ctx)
	}
	key := lockKey(day, j.loc)
	ok, err := j.locker.Acquire(ctx, key, j.c.LockTTL)
	if err != nil {
		slog.Default().WarnContext(ctx, "can't acquire usage reset lock, running anyway",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
		return j.run(ctx)
	}
	if !ok {
		slog.Default().InfoContext(ctx, "usage reset already claimed",
			slog.String("key", key),
		)
		return &entity.UsageResetResult{
			RunID:   uuid.NewString(),
			Skipped: true,
			Started: j.now(),
		}, nil
	}
	return j.run(ctx)
}

func lockKey(day time.Time, loc *time.Location) string {
	return lockPrefix + day.In(loc).Format(time.DateOnly)
}

func (j *Job) run(ctx context.Context) (*entity.UsageResetResult, error) {
	if j.c.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.c.RunTimeout)
		defer cancel()
	}

	res := &entity.UsageResetResult{
		RunID:   uuid.NewString(),
		Started: j.now(),
	}
	affected, err := j.coupons.ResetUsage(ctx)
	res.Duration = j.now().Sub(res.Started)
	if err != nil {
		return nil, fmt.Errorf("%w: run %s: %w", gerr.ErrResetFailed, res.RunID, err)
	}
	res.Affected = affected

	slog.Default().InfoContext(ctx, "coupon usage reset",
		slog.String("run_id", res.RunID),
		slog.Int64("affected", res.Affected),
		slog.Duration("took", res.Duration),
	)
	return res, nil
}
