package catalog

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cinesphere/tmdb"
)

// homeRowLimit caps the popular and top rated rows of the home screen
const homeRowLimit = 12

// ImageResolver turns TMDB image paths into URLs
type ImageResolver interface {
	ImageURL(path *string, size tmdb.ImageSize) string
}

type defaultResolver struct{}

func (defaultResolver) ImageURL(path *string, size tmdb.ImageSize) string {
	return tmdb.ImageURL(path, size)
}

// FormatOptions controls how much is printed per movie
type FormatOptions struct {
	ShowDetails bool
	ShowImages  bool
}

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct {
	images ImageResolver
}

// NewConsoleFormatter creates a new console formatter. A nil resolver uses
// the public TMDB image host.
func NewConsoleFormatter(images ImageResolver) *ConsoleFormatter {
	if images == nil {
		images = defaultResolver{}
	}
	return &ConsoleFormatter{images: images}
}

// FormatMovieList formats a titled list of movies
func (f *ConsoleFormatter) FormatMovieList(title string, movies []tmdb.Movie, options FormatOptions) string {
	if len(movies) == 0 {
		return "No movies found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", title, len(movies))
	f.writeTree(&sb, movies, options)
	sb.WriteString("\n")
	return sb.String()
}

// FormatHome formats the landing screen
func (f *ConsoleFormatter) FormatHome(home *Home, options FormatOptions) string {
	var sb strings.Builder

	if hero := home.Hero(); hero != nil {
		fmt.Fprintf(&sb, "\n★ %s", hero.Title)
		if year := hero.Year(); year > 0 {
			fmt.Fprintf(&sb, " (%d)", year)
		}
		sb.WriteString("\n")
		if hero.Overview != "" {
			fmt.Fprintf(&sb, "  %s\n", hero.Overview)
		}
		if options.ShowImages {
			fmt.Fprintf(&sb, "  %s\n", f.images.ImageURL(hero.BackdropPath, tmdb.ImageSizeOriginal))
		}
	}

	sections := []struct {
		title  string
		movies []tmdb.Movie
	}{
		{"Trending Movies", skipHero(home.Trending)},
		{"Popular Releases", truncate(home.Popular, homeRowLimit)},
		{"Top Rated Classics", truncate(home.TopRated, homeRowLimit)},
	}

	for _, section := range sections {
		if len(section.movies) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s (%d):\n\n", section.title, len(section.movies))
		f.writeTree(&sb, section.movies, options)
	}

	if sb.Len() == 0 {
		return "No movies found"
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatDetails formats the movie detail screen
func (f *ConsoleFormatter) FormatDetails(details *Details, options FormatOptions) string {
	movie := details.Movie
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s", movie.Title)
	if year := movie.Year(); year > 0 {
		fmt.Fprintf(&sb, " (%d)", year)
	}
	if details.InWatchlist {
		sb.WriteString(" [IN WATCHLIST]")
	}
	sb.WriteString("\n")

	if movie.Tagline != "" {
		fmt.Fprintf(&sb, "\"%s\"\n", movie.Tagline)
	}
	sb.WriteString("\n")

	var facts []string
	if movie.ReleaseDate != "" {
		facts = append(facts, "Released: "+movie.ReleaseDate)
	}
	if minutes, ok := movie.RuntimeMinutes(); ok {
		facts = append(facts, fmt.Sprintf("Runtime: %dh %dm", minutes/60, minutes%60))
	}
	facts = append(facts, fmt.Sprintf("Rating: %.1f", movie.VoteAverage))
	sb.WriteString(strings.Join(facts, " | "))
	sb.WriteString("\n")

	if len(movie.Genres) > 0 {
		names := make([]string, 0, len(movie.Genres))
		for _, g := range movie.Genres {
			names = append(names, g.Name)
		}
		fmt.Fprintf(&sb, "Genres: %s\n", strings.Join(names, ", "))
	}

	if movie.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", movie.Overview)
	}

	if details.Insight != "" {
		fmt.Fprintf(&sb, "\nAI Verdict: %s\n", details.Insight)
	}

	if cast := movie.Cast(); len(cast) > 0 {
		shown := cast
		if len(shown) > 10 {
			shown = shown[:10]
		}
		fmt.Fprintf(&sb, "\nCast (%d):\n", len(cast))
		for i, member := range shown {
			prefix := "├"
			if i == len(shown)-1 {
				prefix = "╰"
			}
			fmt.Fprintf(&sb, "%s── %s", prefix, member.Name)
			if member.Character != "" {
				fmt.Fprintf(&sb, " as %s", member.Character)
			}
			sb.WriteString("\n")
		}
	}

	if options.ShowImages {
		fmt.Fprintf(&sb, "\nPoster: %s\n", f.images.ImageURL(movie.PosterPath, tmdb.ImageSizeMedium))
		fmt.Fprintf(&sb, "Backdrop: %s\n", f.images.ImageURL(movie.BackdropPath, tmdb.ImageSizeOriginal))
	}

	if len(details.Similar) > 0 {
		fmt.Fprintf(&sb, "\nSimilar Movies (%d):\n\n", len(details.Similar))
		f.writeTree(&sb, details.Similar, FormatOptions{ShowImages: options.ShowImages})
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatGenres formats the genre list with the IDs discover expects
func (f *ConsoleFormatter) FormatGenres(genres []tmdb.Genre) string {
	if len(genres) == 0 {
		return "No genres found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nGenres (%d):\n\n", len(genres))
	for i, g := range genres {
		prefix := "├"
		if i == len(genres)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── %-6d %s\n", prefix, g.ID, g.Name)
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatMoodPicks formats mood suggestions and the movies picked for them
func (f *ConsoleFormatter) FormatMoodPicks(picks *MoodPicks, options FormatOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\nFor a %q mood: %s\n", picks.Mood, strings.Join(picks.Labels, ", "))

	title := "Popular Releases"
	if picks.Genre != nil {
		title = picks.Genre.Name
	}
	sb.WriteString(f.FormatMovieList(title, picks.Movies, options))
	return sb.String()
}

// writeTree renders movies as a tree, one branch per movie
func (f *ConsoleFormatter) writeTree(sb *strings.Builder, movies []tmdb.Movie, options FormatOptions) {
	for i, movie := range movies {
		isLast := i == len(movies)-1
		f.formatMovie(sb, movie, isLast, options)

		if !isLast && (options.ShowDetails || options.ShowImages) {
			sb.WriteString("│\n")
		}
	}
}

// formatMovie formats a single movie entry
func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie tmdb.Movie, isLast bool, options FormatOptions) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}

	fmt.Fprintf(sb, "%s── %s", prefix, movie.Title)
	if year := movie.Year(); year > 0 {
		fmt.Fprintf(sb, " (%d)", year)
	}
	fmt.Fprintf(sb, " ★ %.1f [%d]\n", movie.VoteAverage, movie.ID)

	indent := "│   "
	if isLast {
		indent = "    "
	}

	if options.ShowDetails && movie.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, ellipsize(movie.Overview, 160))
	}

	if options.ShowImages {
		fmt.Fprintf(sb, "%sPoster: %s\n", indent, f.images.ImageURL(movie.PosterPath, tmdb.ImageSizeMedium))
	}
}

func skipHero(trending []tmdb.Movie) []tmdb.Movie {
	if len(trending) <= 1 {
		return nil
	}
	return trending[1:]
}

func ellipsize(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
