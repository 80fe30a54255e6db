package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-deals/config"
	"github.com/jekabolt/grbpwr-deals/internal/analytics"
	httpapi "github.com/jekabolt/grbpwr-deals/internal/api/http"
	"github.com/jekabolt/grbpwr-deals/internal/apisrv/admin"
	"github.com/jekabolt/grbpwr-deals/internal/apisrv/auth"
	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	"github.com/jekabolt/grbpwr-deals/internal/docstore"
	"github.com/jekabolt/grbpwr-deals/internal/runlock"
	"github.com/jekabolt/grbpwr-deals/internal/store"
	"github.com/jekabolt/grbpwr-deals/internal/usagereset"
)

// App is the main application
type App struct {
	hs        *httpapi.Server
	db        dependency.Repository
	locker    *runlock.RedisLocker
	scheduler *usagereset.Scheduler
	c         *config.Config
	done      chan struct{}
	closeOnce sync.Once
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// OpenRepository connects to the storage backend selected in c.
func OpenRepository(ctx context.Context, c *config.Config) (dependency.Repository, error) {
	switch c.Storage.Driver {
	case config.DriverMySQL:
		db, err := store.New(ctx, c.DB)
		if err != nil {
			return nil, fmt.Errorf("couldn't connect to mysql: %w", err)
		}
		return db, nil
	case config.DriverMongo:
		db, err := docstore.New(ctx, c.Mongo)
		if err != nil {
			return nil, fmt.Errorf("couldn't connect to mongo: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting deals dashboard",
		slog.String("storage", a.c.Storage.Driver),
	)

	if err := a.c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.db, err = OpenRepository(ctx, a.c)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't open repository",
			slog.String("err", err.Error()),
		)
		return err
	}

	// a nil *RedisLocker must not reach the job as a non-nil interface
	var locker dependency.Locker
	if a.c.Redis.URL != "" {
		a.locker, err = runlock.New(ctx, a.c.Redis)
		if err != nil {
			slog.Default().ErrorContext(ctx, "couldn't connect to redis",
				slog.String("err", err.Error()),
			)
			return err
		}
		locker = a.locker
	}

	engine := analytics.New(&a.c.Dashboard, a.db.Metrics())

	job, err := usagereset.NewJob(&a.c.UsageReset, a.db.Coupons(), locker)
	if err != nil {
		return err
	}
	a.scheduler = usagereset.NewScheduler(job)
	if a.c.UsageReset.Enabled {
		a.scheduler.Start(ctx)
	}

	authS, err := auth.New(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new auth server",
			slog.String("err", err.Error()),
		)
		return err
	}

	adminS := admin.New(engine, job, a.scheduler, a.c.Dashboard.MaxTrendMonths)

	// start API server
	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, adminS, authS, a.db); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	go func() {
		<-a.hs.Done()
		a.closeOnce.Do(func() { close(a.done) })
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.hs != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := a.hs.Stop(shutdownCtx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.locker != nil {
		a.locker.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	a.closeOnce.Do(func() { close(a.done) })
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}
