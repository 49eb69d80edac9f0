package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitenchhabria09/film-folio-pro/internal/catalog"
)

// Popular lists popular movies: popular [page].
func (a *App) Popular(ctx context.Context, args []string) error {
	page, err := parsePage(args)
	if err != nil {
		return err
	}
	return a.listPage(ctx, "Popular", func(ctx context.Context) (catalog.Page, error) {
		return a.catalog.ListPopular(ctx, page)
	})
}

// TopRated lists the best rated movies: toprated [page].
func (a *App) TopRated(ctx context.Context, args []string) error {
	page, err := parsePage(args)
	if err != nil {
		return err
	}
	return a.listPage(ctx, "Top rated", func(ctx context.Context) (catalog.Page, error) {
		return a.catalog.ListTopRated(ctx, page)
	})
}

// Search looks movies up by title or genre: search <query> [-p N].
func (a *App) Search(ctx context.Context, args []string) error {
	query, page, err := splitSearchArgs(args)
	if err != nil {
		return err
	}
	if query == "" {
		return errors.New("usage: search <query> [-p page]")
	}
	return a.listPage(ctx, fmt.Sprintf("Results for %q", query), func(ctx context.Context) (catalog.Page, error) {
		return a.catalog.Search(ctx, query, page)
	})
}

// Show prints the details of one movie: show <id>.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: show <id>")
	}
	m, err := a.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("%s", movieDetails(m, a.session.IsFavorite(m.ID)))
	return nil
}

func (a *App) listPage(ctx context.Context, title string, fetch func(context.Context) (catalog.Page, error)) error {
	p, err := fetch(ctx)
	if err != nil {
		a.logger.Error(ctx, "catalog request failed", "listing", title, "error", err)
		return fmt.Errorf("catalog: %w", err)
	}
	if len(p.Results) == 0 {
		a.printf("%s: no movies found.\n", title)
		return nil
	}
	a.printf("%s (page %d of %d, %s)\n", title, p.Page, p.TotalPages, plural(p.TotalResults, "movie"))
	for _, m := range p.Results {
		a.println(movieLine(m, a.session.IsFavorite(m.ID)))
	}
	return nil
}

func (a *App) lookup(ctx context.Context, id string) (catalog.Movie, error) {
	m, err := a.catalog.GetByID(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.Movie{}, fmt.Errorf("no movie with id %s", id)
	}
	if err != nil {
		return catalog.Movie{}, fmt.Errorf("catalog: %w", err)
	}
	return m, nil
}
