package cli

import (
	"context"
	"errors"

	"github.com/hitenchhabria09/film-folio-pro/internal/client/services"
)

var errLoginRequired = errors.New("please log in first")

// Favorite adds a movie to the favorites list: fav <id>.
func (a *App) Favorite(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fav <id>")
	}
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	m, err := a.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.session.AddFavorite(ctx, m.ID); err != nil {
		return err
	}
	a.printf("Added %q to your favorites.\n", m.Title)
	return nil
}

// Unfavorite removes a movie from the favorites list: unfav <id>.
// Removing an id that is not in the list is not an error.
func (a *App) Unfavorite(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unfav <id>")
	}
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	if err := a.session.RemoveFavorite(ctx, args[0]); err != nil {
		return err
	}
	a.printf("Removed %s from your favorites.\n", args[0])
	return nil
}

// Favorites prints the favorites collection resolved against the catalog.
func (a *App) Favorites(ctx context.Context) error {
	p, ok := a.session.Current()
	if !ok {
		return errLoginRequired
	}

	a.printf("My Favorites: %s in your collection\n", plural(len(p.Favorites), "movie"))

	movies, err := a.favorites.Resolve(ctx, p)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		a.println("No favorites yet. Use 'fav <id>' on any movie to add it to your collection.")
		return nil
	}
	for _, m := range movies {
		a.println(movieLine(m, true))
	}
	return nil
}

// Share uploads the favorites list and prints a temporary link to it.
func (a *App) Share(ctx context.Context) error {
	p, ok := a.session.Current()
	if !ok {
		return errLoginRequired
	}
	url, err := a.share.Share(ctx, p)
	if errors.Is(err, services.ErrSharingDisabled) {
		return errors.New("sharing is not configured (set s3_bucket)")
	}
	if err != nil {
		a.logger.Error(ctx, "share favorites", "user_id", p.ID, "error", err)
		return err
	}
	a.printf("Your favorites are available for %s at:\n%s\n", services.ShareLinkTTL, url)
	return nil
}
