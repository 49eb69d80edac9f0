package catalog

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"
)

// Mock serves a fixed set of movies from memory.
type Mock struct {
	movies []Movie
	delay  time.Duration
}

type MockOption func(*Mock)

// WithDelay makes every call wait d (or until ctx ends) before answering.
func WithDelay(d time.Duration) MockOption {
	return func(m *Mock) { m.delay = d }
}

// WithMovies replaces the built-in movie set.
func WithMovies(movies []Movie) MockOption {
	return func(m *Mock) { m.movies = slices.Clone(movies) }
}

func NewMock(opts ...MockOption) *Mock {
	m := &Mock{movies: builtinMovies()}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Mock) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *Mock) ListPopular(ctx context.Context, page int) (Page, error) {
	if err := m.wait(ctx); err != nil {
		return Page{}, err
	}
	sorted := slices.Clone(m.movies)
	slices.SortStableFunc(sorted, func(a, b Movie) int { return cmp.Compare(b.Popularity, a.Popularity) })
	return Paginate(sorted, page), nil
}

func (m *Mock) ListTopRated(ctx context.Context, page int) (Page, error) {
	if err := m.wait(ctx); err != nil {
		return Page{}, err
	}
	sorted := slices.Clone(m.movies)
	slices.SortStableFunc(sorted, func(a, b Movie) int { return cmp.Compare(b.Rating, a.Rating) })
	return Paginate(sorted, page), nil
}

// Search matches query case-insensitively against titles and genre names.
func (m *Mock) Search(ctx context.Context, query string, page int) (Page, error) {
	if err := m.wait(ctx); err != nil {
		return Page{}, err
	}
	q := strings.ToLower(query)
	var found []Movie
	for _, mv := range m.movies {
		if strings.Contains(strings.ToLower(mv.Title), q) ||
			slices.ContainsFunc(mv.Genres, func(g string) bool { return strings.Contains(strings.ToLower(g), q) }) {
			found = append(found, mv)
		}
	}
	return Paginate(found, page), nil
}

func (m *Mock) GetByID(ctx context.Context, id string) (Movie, error) {
	if err := m.wait(ctx); err != nil {
		return Movie{}, err
	}
	for _, mv := range m.movies {
		if mv.ID == id {
			return mv, nil
		}
	}
	return Movie{}, ErrNotFound
}

func builtinMovies() []Movie {
	return []Movie{
		{
			ID:              "1",
			Title:           "Dune: Part Two",
			PosterURL:       "https://image.tmdb.org/t/p/w500/1pdfLvkbY9ohJlCjQH2CZjjYVvJ.jpg",
			BackdropURL:     "https://image.tmdb.org/t/p/w1920/xOMo8BRK7PfcJv9JCnx7s5hj0PX.jpg",
			Overview:        "Follow the mythic journey of Paul Atreides as he unites with Chani and the Fremen while on a path of revenge against the conspirators who destroyed his family.",
			ReleaseDate:     "2024-02-29",
			Rating:          8.5,
			Genres:          []string{"Science Fiction", "Adventure", "Drama"},
			DurationMinutes: 166,
			VoteCount:       5210,
			Popularity:      312.4,
		},
		{
			ID:              "2",
			Title:           "Oppenheimer",
			PosterURL:       "https://image.tmdb.org/t/p/w500/8Gxv8gSFCU0XGDykEGv7zR1n2ua.jpg",
			BackdropURL:     "https://image.tmdb.org/t/p/w1920/rLb2cwF3Pazuxaj0sRXQ037tGI1.jpg",
			Overview:        "The story of J. Robert Oppenheimer's role in the development of the atomic bomb during World War II.",
			ReleaseDate:     "2023-07-21",
			Rating:          8.3,
			Genres:          []string{"Drama", "History", "Thriller"},
			DurationMinutes: 180,
			VoteCount:       8120,
			Popularity:      154.9,
		},
		{
			ID:              "3",
			Title:           "Spider-Man: Across the Spider-Verse",
			PosterURL:       "https://image.tmdb.org/t/p/w500/8Vt6mWEReuy4Of61Lnj5Xj704m8.jpg",
			BackdropURL:     "https://image.tmdb.org/t/p/w1920/nGxUxi3PfXDRm7Vg95VBNgNM8yc.jpg",
			Overview:        "After reuniting with Gwen Stacy, Brooklyn's full-time, friendly neighborhood Spider-Man is catapulted across the Multiverse.",
			ReleaseDate:     "2023-06-02",
			Rating:          8.7,
			Genres:          []string{"Animation", "Action", "Adventure"},
			DurationMinutes: 140,
			VoteCount:       6480,
			Popularity:      128.3,
		},
		{
			ID:              "4",
			Title:           "The Batman",
			PosterURL:       "https://image.tmdb.org/t/p/w500/b0PlSFdDwbyK0cf5RxwDpaOJQvQ.jpg",
			BackdropURL:     "https://image.tmdb.org/t/p/w1920/qqHQsStV6exghCM7zbObuYBiYxw.jpg",
			Overview:        "In his second year of fighting crime, Batman uncovers corruption in Gotham City that connects to his own family while facing a serial killer known as the Riddler.",
			ReleaseDate:     "2022-03-04",
			Rating:          7.8,
			Genres:          []string{"Action", "Crime", "Drama"},
			DurationMinutes: 176,
			VoteCount:       10340,
			Popularity:      97.6,
		},
		{
			ID:              "5",
			Title:           "Top Gun: Maverick",
			PosterURL:       "https://image.tmdb.org/t/p/w500/62HCnUTziyWcpDaBO2i1DX17ljH.jpg",
			BackdropURL:     "https://image.tmdb.org/t/p/w1920/odJ4hx6g6vBt4lBWKFD1tI8WS4x.jpg",
			Overview:        "After thirty years, Maverick is still pushing the envelope as a top naval aviator, but must confront ghosts of his past when he leads TOP GUN's elite graduates on a mission.",
			ReleaseDate:     "2022-05-27",
			Rating:          8.2,
			Genres:          []string{"Action", "Drama"},
			DurationMinutes: 130,
			VoteCount:       9010,
			Popularity:      88.1,
		},
		{
			ID:              "6",
			Title:           "Avatar: The Way of Water",
			PosterURL:       "https://image.tmdb.org/t/p/w500/t6HIqrRAclMCA60NsSmeqe9RmNV.jpg",
			BackdropURL:     "https://image.tmdb.org/t/p/w1920/s16H6tpK2utvwDtzZ8Qy4qm5Emw.jpg",
			Overview:        "Set more than a decade after the events of the first film, learn the story of the Sully family, the trouble that follows them, and the lengths they go to keep each other safe.",
			ReleaseDate:     "2022-12-16",
			Rating:          7.6,
			Genres:          []string{"Science Fiction", "Adventure", "Action"},
			DurationMinutes: 192,
			VoteCount:       11200,
			Popularity:      140.2,
		},
	}
}
