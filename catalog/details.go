package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinesphere/tmdb"
)

// Details is the movie detail screen data
type Details struct {
	Movie       *tmdb.MovieDetails
	Similar     []tmdb.Movie
	Insight     string
	InWatchlist bool
}

// LoadDetails fetches a movie and its similar movies concurrently, then adds
// the AI insight and watchlist membership. Only TMDB failures are returned.
func (c *Catalog) LoadDetails(ctx context.Context, id int) (*Details, error) {
	var (
		details *tmdb.MovieDetails
		similar *tmdb.MoviePage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := c.api.GetMovieDetails(gctx, id)
		if err != nil {
			return fmt.Errorf("movie %d: %w", id, err)
		}
		details = d
		return nil
	})
	g.Go(func() error {
		page, err := c.api.GetSimilarMovies(gctx, id)
		if err != nil {
			return fmt.Errorf("similar to %d: %w", id, err)
		}
		similar = page
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Details{
		Movie:   details,
		Similar: truncate(similar.Results, SimilarLimit),
	}

	if c.store != nil {
		result.InWatchlist = c.store.Contains(details.ID)
	}

	if c.insights != nil {
		result.Insight = c.insights.Insight(ctx, details.Title, details.Overview)
	}

	return result, nil
}
