package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinesphere/catalog"
	"github.com/s0up4200/cinesphere/tmdb"
)

var (
	pages     int
	noInsight bool
	imageSize string
)

// homeCmd represents the home command
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show trending, popular and top rated movies",
	Args:  cobra.NoArgs,
	RunE:  runHome,
}

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse <section>",
	Short: "Page through a section: trending, popular, top-rated or ai-picks",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show movie details, cast, similar movies and an AI verdict",
	Args:  cobra.ExactArgs(1),
	RunE:  runMovie,
}

// similarCmd represents the similar command
var similarCmd = &cobra.Command{
	Use:   "similar <id>",
	Short: "List movies similar to a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List TMDB movie genres",
	Args:  cobra.NoArgs,
	RunE:  runGenres,
}

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover <genre-id>",
	Short: "List popular movies of a genre",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiscover,
}

// moodCmd represents the mood command
var moodCmd = &cobra.Command{
	Use:   "mood <mood>",
	Short: "Ask Gemini for genres that fit a mood and list matching movies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMood,
}

// imageCmd represents the image command
var imageCmd = &cobra.Command{
	Use:   "image [path]",
	Short: "Resolve a TMDB image path to a URL",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImage,
}

func init() {
	for _, c := range []*cobra.Command{browseCmd, searchCmd, discoverCmd} {
		c.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	}
	movieCmd.Flags().BoolVar(&noInsight, "no-insight", false, "skip the AI verdict")
	imageCmd.Flags().StringVar(&imageSize, "size", string(tmdb.ImageSizeMedium), "image size: w500 or original")

	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(imageCmd)
}

func runHome(cmd *cobra.Command, args []string) error {
	home, err := cat.LoadHome(cmd.Context())
	if err != nil {
		return err
	}

	printOutput(cmd, formatter.FormatHome(home, formatOptions()))
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	section, err := catalog.ParseSection(args[0])
	if err != nil {
		return err
	}

	return printFeed(cmd, section.Title(), cat.SectionFeed(section))
}

func runMovie(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	loader := cat
	if noInsight {
		loader = catalog.New(tmdbClient, nil, store, logger)
	}

	details, err := loader.LoadDetails(cmd.Context(), id)
	if err != nil {
		return err
	}

	printOutput(cmd, formatter.FormatDetails(details, formatOptions()))
	return nil
}

func runSimilar(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	page, err := tmdbClient.GetSimilarMovies(cmd.Context(), id)
	if err != nil {
		return err
	}

	printOutput(cmd, formatter.FormatMovieList(fmt.Sprintf("Similar to %d", id), page.Results, formatOptions()))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	return printFeed(cmd, fmt.Sprintf("Results for %q", query), cat.SearchFeed(query))
}

func runGenres(cmd *cobra.Command, args []string) error {
	genres, err := tmdbClient.GetGenres(cmd.Context())
	if err != nil {
		return err
	}

	printOutput(cmd, formatter.FormatGenres(genres))
	return nil
}

func runDiscover(cmd *cobra.Command, args []string) error {
	genreID, err := strconv.Atoi(args[0])
	if err != nil || genreID <= 0 {
		return fmt.Errorf("invalid genre id: %q (see 'cinesphere genres')", args[0])
	}

	return printFeed(cmd, fmt.Sprintf("Genre %d", genreID), cat.GenreFeed(genreID))
}

func runMood(cmd *cobra.Command, args []string) error {
	mood := strings.TrimSpace(strings.Join(args, " "))
	if mood == "" {
		return fmt.Errorf("mood is required")
	}

	picks, err := cat.LoadMoodPicks(cmd.Context(), mood)
	if err != nil {
		return err
	}

	printOutput(cmd, formatter.FormatMoodPicks(picks, formatOptions()))
	return nil
}

func runImage(cmd *cobra.Command, args []string) error {
	size, err := tmdb.ParseImageSize(imageSize)
	if err != nil {
		return err
	}

	var path *string
	if len(args) == 1 {
		path = &args[0]
	}

	fmt.Fprintln(cmd.OutOrStdout(), tmdbClient.ImageURL(path, size))
	return nil
}

// printFeed loads the requested number of pages and prints what was gathered
func printFeed(cmd *cobra.Command, title string, feed *catalog.Feed) error {
	if pages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	if err := feed.LoadPages(cmd.Context(), pages); err != nil {
		if len(feed.Movies()) == 0 {
			return err
		}
		logger.Warn().Err(err).Int("page", feed.Page()).Msg("Stopped loading pages early")
	}

	printOutput(cmd, formatter.FormatMovieList(title, feed.Movies(), formatOptions()))

	if feed.HasMore() {
		fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d, use --pages to load more\n", feed.Page(), feed.TotalPages())
	}
	return nil
}
