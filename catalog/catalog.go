// Package catalog assembles the screens of cinesphere (home, movie details,
// paged sections and mood picks) from the TMDB client, the insight client
// and the watchlist.
package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinesphere/tmdb"
)

const (
	// TrendingLimit caps the trending row of the home screen
	TrendingLimit = 10
	// SimilarLimit caps the similar movies shown with details
	SimilarLimit = 6
)

// Insighter produces AI commentary. Implementations must not fail.
type Insighter interface {
	Insight(ctx context.Context, title, overview string) string
	MoodRecommendations(ctx context.Context, mood string) []string
}

// Watchlist is the read side of the watchlist store
type Watchlist interface {
	Contains(id int) bool
	List() []tmdb.Movie
}

// Catalog loads screen data. Insights and watchlist are optional.
type Catalog struct {
	api      tmdb.API
	insights Insighter
	store    Watchlist
	logger   zerolog.Logger
}

// New creates a catalog
func New(api tmdb.API, insights Insighter, store Watchlist, logger zerolog.Logger) *Catalog {
	return &Catalog{
		api:      api,
		insights: insights,
		store:    store,
		logger:   logger,
	}
}

// API returns the underlying TMDB client
func (c *Catalog) API() tmdb.API {
	return c.api
}

func truncate(movies []tmdb.Movie, limit int) []tmdb.Movie {
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}
