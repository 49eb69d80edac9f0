package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hitenchhabria09/film-folio-pro/internal/logging"
)

const (
	DefaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	DefaultTMDBImageBaseURL = "https://image.tmdb.org/t/p"

	posterSize   = "w500"
	backdropSize = "w1280"
)

// tmdbGenres maps TMDB movie genre ids to names.
var tmdbGenres = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// TMDBConfig holds the TMDB client settings. AccessToken (v4 bearer) wins
// over APIKey (v3 query parameter) when both are set.
type TMDBConfig struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	AccessToken  string
	Timeout      time.Duration
}

// TMDB reads the catalog from The Movie Database v3 REST API.
type TMDB struct {
	cfg    TMDBConfig
	client *http.Client
	logger logging.Logger
}

func NewTMDB(cfg TMDBConfig, l logging.Logger) *TMDB {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTMDBBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultTMDBImageBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.ImageBaseURL = strings.TrimRight(cfg.ImageBaseURL, "/")
	return &TMDB{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: l.With("module", "tmdb"),
	}
}

type tmdbMovie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
	Genres       []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	Runtime int `json:"runtime"`
}

type tmdbPage struct {
	Page         int         `json:"page"`
	Results      []tmdbMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type tmdbError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func (c *TMDB) ListPopular(ctx context.Context, page int) (Page, error) {
	return c.list(ctx, "/movie/popular", url.Values{}, page)
}

func (c *TMDB) ListTopRated(ctx context.Context, page int) (Page, error) {
	return c.list(ctx, "/movie/top_rated", url.Values{}, page)
}

func (c *TMDB) Search(ctx context.Context, query string, page int) (Page, error) {
	return c.list(ctx, "/search/movie", url.Values{"query": {query}}, page)
}

func (c *TMDB) GetByID(ctx context.Context, id string) (Movie, error) {
	var m tmdbMovie
	if err := c.get(ctx, "/movie/"+url.PathEscape(id), url.Values{}, &m); err != nil {
		return Movie{}, err
	}
	return c.toMovie(m), nil
}

func (c *TMDB) list(ctx context.Context, path string, q url.Values, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))

	var p tmdbPage
	if err := c.get(ctx, path, q, &p); err != nil {
		return Page{}, err
	}

	out := Page{
		Page:         p.Page,
		Results:      make([]Movie, 0, len(p.Results)),
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
	for _, m := range p.Results {
		out.Results = append(out.Results, c.toMovie(m))
	}
	return out, nil
}

func (c *TMDB) get(ctx context.Context, path string, q url.Values, out any) error {
	if c.cfg.AccessToken == "" && c.cfg.APIKey != "" {
		q.Set("api_key", c.cfg.APIKey)
	}
	u := c.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}

	c.logger.Debug(ctx, "tmdb request", "path", path)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		var te tmdbError
		if json.Unmarshal(body, &te) == nil && te.StatusMessage != "" {
			return fmt.Errorf("tmdb %s: HTTP %d: %s", path, resp.StatusCode, te.StatusMessage)
		}
		return fmt.Errorf("tmdb %s: HTTP %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

func (c *TMDB) toMovie(m tmdbMovie) Movie {
	out := Movie{
		ID:              strconv.Itoa(m.ID),
		Title:           m.Title,
		PosterURL:       c.imageURL(posterSize, m.PosterPath),
		BackdropURL:     c.imageURL(backdropSize, m.BackdropPath),
		Overview:        m.Overview,
		ReleaseDate:     m.ReleaseDate,
		Rating:          RoundRating(m.VoteAverage),
		DurationMinutes: m.Runtime,
		VoteCount:       m.VoteCount,
		Popularity:      m.Popularity,
	}
	if out.ReleaseDate == "" {
		out.ReleaseDate = UnknownRelease
	}

	// details carry named genres, listings carry ids
	if len(m.Genres) > 0 {
		for _, g := range m.Genres {
			name := g.Name
			if name == "" {
				name = genreName(g.ID)
			}
			out.Genres = append(out.Genres, name)
		}
	} else {
		for _, id := range m.GenreIDs {
			out.Genres = append(out.Genres, genreName(id))
		}
	}
	if out.Genres == nil {
		out.Genres = []string{}
	}
	return out
}

func (c *TMDB) imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return c.cfg.ImageBaseURL + "/" + size + path
}

func genreName(id int) string {
	if name, ok := tmdbGenres[id]; ok {
		return name
	}
	return UnknownGenre
}
