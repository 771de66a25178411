package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinesphere/tmdb"
)

// ErrNoMorePages is returned by Feed.Next once the last page has been loaded
var ErrNoMorePages = errors.New("no more pages")

// PageFetcher loads one page of a paged TMDB list
type PageFetcher func(ctx context.Context, page int) (*tmdb.MoviePage, error)

// Feed is a "load more" pager. Each page is appended to the accumulated list
// as returned by TMDB; movies repeated across pages are kept and counted.
type Feed struct {
	name   string
	fetch  PageFetcher
	logger zerolog.Logger

	page       int
	totalPages int
	movies     []tmdb.Movie
	seen       map[int]struct{}
	duplicates int
	done       bool
}

// NewFeed creates a feed over fetch. name is only used for logging.
func NewFeed(name string, fetch PageFetcher, logger zerolog.Logger) *Feed {
	return &Feed{
		name:   name,
		fetch:  fetch,
		logger: logger,
		movies: []tmdb.Movie{},
		seen:   make(map[int]struct{}),
	}
}

// SectionFeed pages through a section. ai-picks is served by popular.
func (c *Catalog) SectionFeed(section Section) *Feed {
	var fetch PageFetcher
	switch section {
	case SectionTrending:
		fetch = c.api.GetTrending
	case SectionTopRated:
		fetch = c.api.GetTopRated
	default:
		fetch = c.api.GetPopular
	}
	return NewFeed(section.String(), fetch, c.logger)
}

// SearchFeed pages through the results of a title search
func (c *Catalog) SearchFeed(query string) *Feed {
	return NewFeed("search", func(ctx context.Context, page int) (*tmdb.MoviePage, error) {
		return c.api.SearchMovies(ctx, query, page)
	}, c.logger)
}

// GenreFeed pages through the most popular movies of a genre
func (c *Catalog) GenreFeed(genreID int) *Feed {
	return NewFeed(fmt.Sprintf("genre-%d", genreID), func(ctx context.Context, page int) (*tmdb.MoviePage, error) {
		return c.api.GetMoviesByGenre(ctx, genreID, page)
	}, c.logger)
}

// Next loads the following page and returns its results. On error the feed
// is unchanged and the same page is requested again on the next call.
func (f *Feed) Next(ctx context.Context) ([]tmdb.Movie, error) {
	if f.done {
		return nil, ErrNoMorePages
	}

	page := f.page + 1
	result, err := f.fetch(ctx, page)
	if err != nil {
		return nil, err
	}

	dupes := 0
	for _, movie := range result.Results {
		if _, ok := f.seen[movie.ID]; ok {
			dupes++
			continue
		}
		f.seen[movie.ID] = struct{}{}
	}
	if dupes > 0 {
		f.duplicates += dupes
		f.logger.Debug().
			Str("feed", f.name).
			Int("page", page).
			Int("duplicates", dupes).
			Msg("Page repeats movies from earlier pages")
	}

	f.page = page
	f.totalPages = result.TotalPages
	f.movies = append(f.movies, result.Results...)
	f.done = len(result.Results) == 0 || page >= result.TotalPages

	return result.Results, nil
}

// LoadPages calls Next up to n times, stopping early at the last page
func (f *Feed) LoadPages(ctx context.Context, n int) error {
	for i := 0; i < n && f.HasMore(); i++ {
		if _, err := f.Next(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Movies returns everything loaded so far
func (f *Feed) Movies() []tmdb.Movie {
	return f.movies
}

// HasMore reports whether another page can be requested
func (f *Feed) HasMore() bool {
	return !f.done
}

// Page returns the last loaded page number, 0 before the first load
func (f *Feed) Page() int {
	return f.page
}

// TotalPages returns the page count reported by the last response
func (f *Feed) TotalPages() int {
	return f.totalPages
}

// Duplicates returns how many loaded movies repeat an earlier ID
func (f *Feed) Duplicates() int {
	return f.duplicates
}
