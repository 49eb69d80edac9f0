// Package server initializes and runs catalogd, the gRPC movie catalog
// service used by film-folio clients. It handles graceful shutdown on
// SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hitenchhabria09/film-folio-pro/internal/catalog"
	"github.com/hitenchhabria09/film-folio-pro/internal/logging"
	"github.com/hitenchhabria09/film-folio-pro/internal/server/config"

	gs "github.com/hitenchhabria09/film-folio-pro/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	catalog catalog.Catalog
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlog(logging.ParseLevel(c.LogLevel), c.LogFormat, os.Stdout)

	cat, err := newCatalog(c, logger)
	if err != nil {
		return nil, fmt.Errorf("catalog init error: %w", err)
	}

	return &App{config: c, logger: logger, catalog: cat}, nil
}

func newCatalog(c *config.Config, l logging.Logger) (catalog.Catalog, error) {
	switch c.Source {
	case "mock", "":
		return catalog.NewMock(catalog.WithDelay(c.Latency)), nil
	case "tmdb":
		if c.TMDBAPIKey == "" && c.TMDBAccessToken == "" {
			return nil, errors.New("tmdb source needs TMDB_API_KEY or TMDB_ACCESS_TOKEN")
		}
		return catalog.NewTMDB(catalog.TMDBConfig{
			BaseURL:      c.TMDBBaseURL,
			ImageBaseURL: c.TMDBImageBaseURL,
			APIKey:       c.TMDBAPIKey,
			AccessToken:  c.TMDBAccessToken,
			Timeout:      c.RequestTimeout,
		}, l), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", c.Source)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.ListenAddr, app.logger, app.catalog)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves the catalog until ctx is cancelled or a signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting catalogd...", "source", app.config.Source)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
