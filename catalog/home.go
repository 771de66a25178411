package catalog

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinesphere/tmdb"
)

// Home is the landing screen data
type Home struct {
	Trending []tmdb.Movie
	Popular  []tmdb.Movie
	TopRated []tmdb.Movie
}

// Hero returns the featured movie, or nil when trending is empty
func (h *Home) Hero() *tmdb.Movie {
	if len(h.Trending) == 0 {
		return nil
	}
	return &h.Trending[0]
}

// LoadHome fetches the first page of trending, popular and top rated
// concurrently. The first failure cancels the other requests.
func (c *Catalog) LoadHome(ctx context.Context) (*Home, error) {
	start := time.Now()

	var trending, popular, topRated *tmdb.MoviePage

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := c.api.GetTrending(ctx, 1)
		if err != nil {
			return fmt.Errorf("trending: %w", err)
		}
		trending = page
		return nil
	})
	g.Go(func() error {
		page, err := c.api.GetPopular(ctx, 1)
		if err != nil {
			return fmt.Errorf("popular: %w", err)
		}
		popular = page
		return nil
	})
	g.Go(func() error {
		page, err := c.api.GetTopRated(ctx, 1)
		if err != nil {
			return fmt.Errorf("top rated: %w", err)
		}
		topRated = page
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	home := &Home{
		Trending: truncate(trending.Results, TrendingLimit),
		Popular:  popular.Results,
		TopRated: topRated.Results,
	}

	c.logger.Debug().
		Int("trending", len(home.Trending)).
		Int("popular", len(home.Popular)).
		Int("top_rated", len(home.TopRated)).
		Dur("elapsed", time.Since(start)).
		Msg("Loaded home")

	return home, nil
}
