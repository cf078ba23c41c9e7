package app

import (
	"context"

	"log/slog"

	"github.com/zenthra/zenthra-manager/config"
	httpapi "github.com/zenthra/zenthra-manager/internal/api/http"
	"github.com/zenthra/zenthra-manager/internal/analytics"
	"github.com/zenthra/zenthra-manager/internal/apisrv/auth"
	"github.com/zenthra/zenthra-manager/internal/apisrv/report"
	"github.com/zenthra/zenthra-manager/internal/dependency"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config, rep dependency.Repository) *App {
	return &App{
		c:    c,
		db:   rep,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting order analytics manager")

	authS, err := auth.New(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new auth server",
			slog.String("err", err.Error()),
		)
		return err
	}

	analyticsS := analytics.New(a.db.Orders())
	reportS := report.New(analyticsS, a.db.Orders())

	// start API server
	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, authS, reportS); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown",
				slog.String("err", err.Error()),
			)
		}
	}
	a.db.Close()
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
