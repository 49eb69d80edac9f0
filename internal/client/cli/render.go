package cli

import (
	"fmt"
	"strings"

	"github.com/hitenchhabria09/film-folio-pro/internal/catalog"
)

// movieLine is the one-line listing form of m. Favorites get a heart.
func movieLine(m catalog.Movie, favorite bool) string {
	mark := " "
	if favorite {
		mark = "♥"
	}
	return fmt.Sprintf("%s %-8s %s (%s)  ★ %.1f  %s",
		mark, m.ID, m.Title, m.ReleaseYear(), m.Rating, strings.Join(m.Genres, ", "))
}

// movieDetails is the multi-line detail view of m.
func movieDetails(m catalog.Movie, favorite bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", m.Title, m.ReleaseYear())
	fmt.Fprintf(&b, "  id:        %s\n", m.ID)
	fmt.Fprintf(&b, "  rating:    %.1f/10 (%d votes)\n", m.Rating, m.VoteCount)
	if m.DurationMinutes > 0 {
		fmt.Fprintf(&b, "  runtime:   %dh %dm\n", m.DurationMinutes/60, m.DurationMinutes%60)
	}
	fmt.Fprintf(&b, "  released:  %s\n", m.ReleaseDate)
	fmt.Fprintf(&b, "  genres:    %s\n", strings.Join(m.Genres, ", "))
	if m.PosterURL != "" {
		fmt.Fprintf(&b, "  poster:    %s\n", m.PosterURL)
	}
	if favorite {
		b.WriteString("  ♥ in your favorites\n")
	}
	if m.Overview != "" {
		fmt.Fprintf(&b, "\n%s\n", m.Overview)
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
