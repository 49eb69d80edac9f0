package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hitenchhabria09/film-folio-pro/internal/catalog"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/config"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/models"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/repositories/kv"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/services"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/token"
	"github.com/hitenchhabria09/film-folio-pro/internal/logging"
)

// Catalog sources accepted by Config.CatalogSource.
const (
	SourceMock = "mock"
	SourceTMDB = "tmdb"
	SourceGRPC = "grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	session   services.SessionService
	catalog   catalog.Catalog
	favorites *services.FavoritesService
	share     *services.ShareService
	reader    *bufio.Reader
	out       io.Writer

	// userName mirrors the session's current user for the prompt.
	userName    string
	unsubscribe func()
	closers     []func() error
}

// NewApp opens storage, connects the configured catalog and builds the
// services on top of them.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	store, err := kv.Open(ctx, c.StorageDriver, c.StorageDSN)
	if err != nil {
		l.Error(ctx, "error initializing storage", "driver", c.StorageDriver, "error", err)
		return nil, err
	}

	cat, closeCatalog, err := newCatalog(c, l)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	session := services.NewSessionService(store, token.NewCodec(c.TokenSecret), services.SessionOptions{
		TTL:             c.SessionTTL,
		DedupeFavorites: c.DedupeFavorites,
	}, l)
	favorites := services.NewFavoritesService(cat, c.FavoritesConcurrency, l)
	share := services.NewShareService(services.S3Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	}, favorites)

	a := newApp(c, l, session, cat, favorites, share)
	if closeCatalog != nil {
		a.closers = append(a.closers, closeCatalog)
	}
	a.closers = append(a.closers, store.Close)
	return a, nil
}

func newApp(c *config.Config, l logging.Logger, s services.SessionService, cat catalog.Catalog,
	f *services.FavoritesService, sh *services.ShareService) *App {
	a := &App{
		config:    c,
		logger:    l.With("module", "cli"),
		session:   s,
		catalog:   cat,
		favorites: f,
		share:     sh,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
	a.unsubscribe = s.Subscribe(a.onSessionChange)
	return a
}

// newCatalog returns the catalog selected by c.CatalogSource and, for
// network-backed sources, a function releasing its connection.
func newCatalog(c *config.Config, l logging.Logger) (catalog.Catalog, func() error, error) {
	switch c.CatalogSource {
	case SourceMock, "":
		return catalog.NewMock(), nil, nil
	case SourceTMDB:
		return catalog.NewTMDB(catalog.TMDBConfig{
			BaseURL:      c.TMDBBaseURL,
			ImageBaseURL: c.TMDBImageBaseURL,
			APIKey:       c.TMDBAPIKey,
			AccessToken:  c.TMDBAccessToken,
			Timeout:      c.RequestTimeout,
		}, l), nil, nil
	case SourceGRPC:
		gc, err := catalog.DialGRPC(c.CatalogAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("dial catalog %s: %w", c.CatalogAddr, err)
		}
		return gc, gc.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", c.CatalogSource)
	}
}

func (a *App) onSessionChange(p models.Profile, ok bool) {
	if !ok {
		a.userName = ""
		return
	}
	a.userName = p.Email
}

// Run restores the previous session and serves the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.session.Restore(ctx)
	a.Root(ctx)
}

// Close releases the catalog connection and the store.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(context.Background(), "close", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
