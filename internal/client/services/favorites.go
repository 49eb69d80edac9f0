package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitenchhabria09/film-folio-pro/internal/catalog"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/models"
	"github.com/hitenchhabria09/film-folio-pro/internal/logging"
	"golang.org/x/sync/errgroup"
)

// FavoritesService turns a favorites list into catalog movies.
type FavoritesService struct {
	catalog catalog.Catalog
	limit   int
	logger  logging.Logger
}

// NewFavoritesService returns a service that runs at most concurrency
// lookups at a time (unbounded when concurrency <= 0).
func NewFavoritesService(c catalog.Catalog, concurrency int, l logging.Logger) *FavoritesService {
	return &FavoritesService{catalog: c, limit: concurrency, logger: l.With("module", "favorites")}
}

// Resolve looks up every favorite concurrently and returns the movies in
// the order of p.Favorites. Ids the catalog does not know are skipped. Any
// other lookup error fails the whole call with an empty result.
func (f *FavoritesService) Resolve(ctx context.Context, p models.Profile) ([]catalog.Movie, error) {
	ids := p.Favorites
	slots := make([]*catalog.Movie, len(ids))

	var g errgroup.Group
	if f.limit > 0 {
		g.SetLimit(f.limit)
	}
	for i, id := range ids {
		g.Go(func() error {
			m, err := f.catalog.GetByID(ctx, id)
			if errors.Is(err, catalog.ErrNotFound) {
				f.logger.Debug(ctx, "favorite not in catalog", "movie_id", id)
				return nil
			}
			if err != nil {
				return fmt.Errorf("lookup movie %s: %w", id, err)
			}
			slots[i] = &m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return []catalog.Movie{}, err
	}

	out := make([]catalog.Movie, 0, len(ids))
	for _, m := range slots {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out, nil
}
