package catalog

import (
	"context"
	"strings"

	"github.com/s0up4200/cinesphere/insight"
	"github.com/s0up4200/cinesphere/tmdb"
)

// MoodPicks are the suggestions for a mood
type MoodPicks struct {
	Mood   string
	Labels []string
	// Genre is the first label matching a TMDB genre, nil when none match
	Genre  *tmdb.Genre
	Movies []tmdb.Movie
}

// LoadMoodPicks asks for genre labels fitting mood and lists the most popular
// movies of the first label that names a TMDB genre. Without a match the
// popular list is used, as for the ai-picks section.
func (c *Catalog) LoadMoodPicks(ctx context.Context, mood string) (*MoodPicks, error) {
	picks := &MoodPicks{Mood: mood}
	if c.insights != nil {
		picks.Labels = c.insights.MoodRecommendations(ctx, mood)
	} else {
		picks.Labels = insight.DefaultMoods()
	}

	genres, err := c.api.GetGenres(ctx)
	if err != nil {
		return nil, err
	}
	picks.Genre = matchGenre(picks.Labels, genres)

	var page *tmdb.MoviePage
	if picks.Genre != nil {
		page, err = c.api.GetMoviesByGenre(ctx, picks.Genre.ID, 1)
	} else {
		c.logger.Debug().Strs("labels", picks.Labels).Msg("No mood label matches a genre, using popular")
		page, err = c.api.GetPopular(ctx, 1)
	}
	if err != nil {
		return nil, err
	}
	picks.Movies = page.Results

	return picks, nil
}

// matchGenre returns the genre named by the first matching label. Names are
// compared with case, spaces and punctuation removed.
func matchGenre(labels []string, genres []tmdb.Genre) *tmdb.Genre {
	byName := make(map[string]tmdb.Genre, len(genres))
	for _, g := range genres {
		byName[normalizeGenre(g.Name)] = g
	}

	for _, label := range labels {
		key := normalizeGenre(label)
		if alias, ok := genreAliases[key]; ok {
			key = alias
		}
		if g, ok := byName[key]; ok {
			return &g
		}
	}
	return nil
}

// genreAliases maps common label spellings to normalized TMDB genre names
var genreAliases = map[string]string{
	"scifi":          "sciencefiction",
	"sf":             "sciencefiction",
	"romcom":         "romance",
	"romanticcomedy": "romance",
	"animated":       "animation",
	"doc":            "documentary",
	"suspense":       "thriller",
	"heist":          "crime",
	"superhero":      "action",
}

func normalizeGenre(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
