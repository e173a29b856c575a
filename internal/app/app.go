package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"kasubs/internal/domain/ports"
	"kasubs/internal/usecase"
)

const refreshTimeout = 30 * time.Minute

// Schedule is the cron expression of the tree refresh job.
type Schedule string

// App exposes the use cases and manages the lifecycle of the refresh scheduler.
type App struct {
	cron     *cron.Cron
	refresh  *usecase.TreeRefresh
	export   *usecase.TreeExport
	transfer *usecase.SubtitleTransfer
	catalog  *usecase.TreeCatalog
	source   ports.ContentSource
	host     ports.SubtitleHost
	logger   ports.Logger
	schedule Schedule
}

// New constructs an App instance.
func New(
	refresh *usecase.TreeRefresh,
	export *usecase.TreeExport,
	transfer *usecase.SubtitleTransfer,
	catalog *usecase.TreeCatalog,
	source ports.ContentSource,
	host ports.SubtitleHost,
	logger ports.Logger,
	schedule Schedule,
) *App {
	return &App{
		cron:     cron.New(),
		refresh:  refresh,
		export:   export,
		transfer: transfer,
		catalog:  catalog,
		source:   source,
		host:     host,
		logger:   logger,
		schedule: schedule,
	}
}

// Refresh returns the tree refresh use case.
func (a *App) Refresh() *usecase.TreeRefresh { return a.refresh }

// Export returns the tree export use case.
func (a *App) Export() *usecase.TreeExport { return a.export }

// Transfer returns the subtitle transfer use case.
func (a *App) Transfer() *usecase.SubtitleTransfer { return a.transfer }

// Catalog returns the tree caches of the configured locale.
func (a *App) Catalog() *usecase.TreeCatalog { return a.catalog }

// Source returns the Khan Academy client.
func (a *App) Source() ports.ContentSource { return a.source }

// Host returns the Amara client.
func (a *App) Host() ports.SubtitleHost { return a.host }

// Logger returns the application logger.
func (a *App) Logger() ports.Logger { return a.logger }

// Run refreshes the trees once immediately and then according to the cron
// schedule until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduleJob(); err != nil {
		return err
	}

	a.logger.Info(ctx, "running first tree refresh immediately")
	if err := a.refresh.Run(ctx); err != nil {
		a.logger.Error(ctx, "initial tree refresh failed", "error", err)
	}

	a.logger.Info(ctx, "starting scheduler", "cron", string(a.schedule))
	a.cron.Start()

	<-ctx.Done()
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
	return nil
}

func (a *App) scheduleJob() error {
	_, err := a.cron.AddFunc(string(a.schedule), func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := a.refresh.Run(ctx); err != nil {
			a.logger.Error(ctx, "scheduled tree refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	return nil
}
