// Package catalog describes the movie catalog the client browses and
// provides its implementations: built-in mock data, the TMDB HTTP API and
// a gRPC client for catalogd.
package catalog

import (
	"context"
	"math"

	"github.com/hitenchhabria09/film-folio-pro/internal/common"
)

// ErrNotFound is returned by GetByID when the catalog has no such movie.
var ErrNotFound = common.ErrorNotFound

// PageSize is the number of movies per listing page.
const PageSize = 20

// Defaults for fields the source does not provide.
const (
	UnknownGenre   = "Unknown"
	UnknownRelease = "TBA"
)

// Movie is one catalog entry.
type Movie struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	PosterURL       string   `json:"poster_url"`
	BackdropURL     string   `json:"backdrop_url"`
	Overview        string   `json:"overview"`
	ReleaseDate     string   `json:"release_date"`
	Rating          float64  `json:"rating"`
	Genres          []string `json:"genres"`
	DurationMinutes int      `json:"duration_minutes"`
	VoteCount       int      `json:"vote_count"`
	Popularity      float64  `json:"popularity"`
}

// Page is one page of a listing or search.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Catalog is the read-only movie source. Pages are 1-based.
type Catalog interface {
	ListPopular(ctx context.Context, page int) (Page, error)
	ListTopRated(ctx context.Context, page int) (Page, error)
	Search(ctx context.Context, query string, page int) (Page, error)
	GetByID(ctx context.Context, id string) (Movie, error)
}

// Paginate cuts the requested page out of movies. Pages below 1 are
// treated as 1; pages past the end are empty.
func Paginate(movies []Movie, page int) Page {
	if page < 1 {
		page = 1
	}
	total := len(movies)
	p := Page{
		Page:         page,
		Results:      []Movie{},
		TotalPages:   (total + PageSize - 1) / PageSize,
		TotalResults: total,
	}
	// checked before multiplying so huge pages cannot overflow
	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, total)
	p.Results = append(p.Results, movies[start:end]...)
	return p
}

// RoundRating clamps r to 0..10 and rounds it to one decimal. NaN becomes 0.
func RoundRating(r float64) float64 {
	if math.IsNaN(r) {
		return 0
	}
	r = math.Max(0, math.Min(10, r))
	return math.Round(r*10) / 10
}

// ReleaseYear returns the first four characters of a release date, or the
// date itself when it is shorter (e.g. "TBA").
func (m Movie) ReleaseYear() string {
	if len(m.ReleaseDate) >= 4 {
		return m.ReleaseDate[:4]
	}
	return m.ReleaseDate
}
