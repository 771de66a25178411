package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/s0up4200/cinesphere/tmdb"
)

// mockAPI is a tmdb.API whose list endpoints are served from in-memory pages
type mockAPI struct {
	mu    sync.Mutex
	calls []string

	pages      map[string][]*tmdb.MoviePage
	details    map[int]*tmdb.MovieDetails
	genres     []tmdb.Genre
	errs       map[string]error
	blockUntil map[string]bool
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		pages:      make(map[string][]*tmdb.MoviePage),
		details:    make(map[int]*tmdb.MovieDetails),
		errs:       make(map[string]error),
		blockUntil: make(map[string]bool),
	}
}

func (m *mockAPI) record(call string) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func (m *mockAPI) called(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (m *mockAPI) list(ctx context.Context, name string, page int) (*tmdb.MoviePage, error) {
	m.record(fmt.Sprintf("%s:%d", name, page))

	if m.blockUntil[name] {
		<-ctx.Done()
		return nil, &tmdb.TransportError{Endpoint: name, Err: ctx.Err()}
	}
	if err := m.errs[name]; err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, tmdb.ErrInvalidPage
	}

	pages := m.pages[name]
	if page > len(pages) {
		return &tmdb.MoviePage{Page: page, Results: []tmdb.Movie{}, TotalPages: len(pages)}, nil
	}
	return pages[page-1], nil
}

func (m *mockAPI) GetTrending(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return m.list(ctx, "trending", page)
}

func (m *mockAPI) GetPopular(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return m.list(ctx, "popular", page)
}

func (m *mockAPI) GetTopRated(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return m.list(ctx, "top_rated", page)
}

func (m *mockAPI) GetMovieDetails(ctx context.Context, id int) (*tmdb.MovieDetails, error) {
	m.record(fmt.Sprintf("details:%d", id))
	if err := m.errs["details"]; err != nil {
		return nil, err
	}
	d, ok := m.details[id]
	if !ok {
		return nil, &tmdb.APIError{StatusCode: 404, Message: "The resource you requested could not be found."}
	}
	return d, nil
}

func (m *mockAPI) GetSimilarMovies(ctx context.Context, id int) (*tmdb.MoviePage, error) {
	return m.list(ctx, "similar", 1)
}

func (m *mockAPI) SearchMovies(ctx context.Context, query string, page int) (*tmdb.MoviePage, error) {
	return m.list(ctx, "search:"+query, page)
}

func (m *mockAPI) GetGenres(ctx context.Context) ([]tmdb.Genre, error) {
	m.record("genres")
	if err := m.errs["genres"]; err != nil {
		return nil, err
	}
	return m.genres, nil
}

func (m *mockAPI) GetMoviesByGenre(ctx context.Context, genreID, page int) (*tmdb.MoviePage, error) {
	return m.list(ctx, fmt.Sprintf("genre:%d", genreID), page)
}

func (m *mockAPI) ImageURL(path *string, size tmdb.ImageSize) string {
	return tmdb.ImageURL(path, size)
}

// mockInsighter returns canned commentary
type mockInsighter struct {
	insight string
	moods   []string
	titles  []string
}

func (m *mockInsighter) Insight(ctx context.Context, title, overview string) string {
	m.titles = append(m.titles, title)
	return m.insight
}

func (m *mockInsighter) MoodRecommendations(ctx context.Context, mood string) []string {
	return m.moods
}

// mockWatchlist is a fixed set of saved IDs
type mockWatchlist map[int]bool

func (m mockWatchlist) Contains(id int) bool { return m[id] }

func (m mockWatchlist) List() []tmdb.Movie { return nil }

func moviesRange(from, to int) []tmdb.Movie {
	movies := make([]tmdb.Movie, 0, to-from+1)
	for id := from; id <= to; id++ {
		movies = append(movies, tmdb.Movie{
			ID:          id,
			Title:       fmt.Sprintf("Movie %d", id),
			ReleaseDate: "2020-01-01",
			VoteAverage: 7,
		})
	}
	return movies
}

func moviePage(n, total int, movies []tmdb.Movie) *tmdb.MoviePage {
	return &tmdb.MoviePage{Page: n, Results: movies, TotalPages: total, TotalResults: total * 20}
}
