package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinesphere/tmdb"
)

var (
	filterExpr string
	noConfirm  bool
)

// watchlistCmd represents the watchlist command
var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Manage the local watchlist",
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved movies, newest first",
	Args:  cobra.NoArgs,
	RunE:  runWatchlistList,
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Save a movie to the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistAdd,
}

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a movie from the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistRemove,
}

var watchlistContainsCmd = &cobra.Command{
	Use:   "contains <id>",
	Short: "Report whether a movie is saved",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistContains,
}

var watchlistToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Save a movie, or remove it if it is already saved",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistToggle,
}

var watchlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every movie from the watchlist",
	Args:  cobra.NoArgs,
	RunE:  runWatchlistClear,
}

var watchlistFiltersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the named filters from the config file",
	Args:  cobra.NoArgs,
	RunE:  runWatchlistFilters,
}

func init() {
	watchlistListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter name or expression (e.g. 'VoteAverage >= 7 and year() > 2010')")
	watchlistClearCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "skip confirmation prompt")

	watchlistCmd.AddCommand(watchlistListCmd)
	watchlistCmd.AddCommand(watchlistAddCmd)
	watchlistCmd.AddCommand(watchlistRemoveCmd)
	watchlistCmd.AddCommand(watchlistContainsCmd)
	watchlistCmd.AddCommand(watchlistToggleCmd)
	watchlistCmd.AddCommand(watchlistClearCmd)
	watchlistCmd.AddCommand(watchlistFiltersCmd)

	rootCmd.AddCommand(watchlistCmd)
}

func runWatchlistList(cmd *cobra.Command, args []string) error {
	movies := store.List()

	title := "Watchlist"
	if filterExpr != "" {
		filtered, err := filters.Apply(cmd.Context(), filterExpr, movies)
		if err != nil {
			return err
		}
		logger.Debug().
			Str("filter", filterExpr).
			Int("total", len(movies)).
			Int("matched", len(filtered)).
			Msg("Applied watchlist filter")
		movies = filtered
		title = fmt.Sprintf("Watchlist matching %q", filterExpr)
	}

	if len(movies) == 0 && filterExpr == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Your watchlist is empty")
		return nil
	}

	printOutput(cmd, formatter.FormatMovieList(title, movies, formatOptions()))
	return nil
}

func runWatchlistAdd(cmd *cobra.Command, args []string) error {
	movie, err := fetchMovie(cmd, args[0])
	if err != nil {
		return err
	}

	if store.Contains(movie.ID) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already in your watchlist\n", movie.Title)
		return nil
	}

	if err := store.Add(movie); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to your watchlist\n", movie.Title)
	return nil
}

func runWatchlistRemove(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	if !store.Contains(id) {
		fmt.Fprintf(cmd.OutOrStdout(), "Movie %d is not in your watchlist\n", id)
		return nil
	}

	if err := store.Remove(id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed movie %d from your watchlist\n", id)
	return nil
}

func runWatchlistContains(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), boolToStatus(store.Contains(id)))
	return nil
}

func runWatchlistToggle(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	// Removing needs no snapshot, so skip the TMDB round trip
	if store.Contains(id) {
		if err := store.Remove(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed movie %d from your watchlist\n", id)
		return nil
	}

	movie, err := fetchMovie(cmd, args[0])
	if err != nil {
		return err
	}

	added, err := store.Toggle(movie)
	if err != nil {
		return err
	}

	if added {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to your watchlist\n", movie.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from your watchlist\n", movie.Title)
	}
	return nil
}

func runWatchlistClear(cmd *cobra.Command, args []string) error {
	count := len(store.List())
	if count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Your watchlist is already empty")
		return nil
	}

	if !noConfirm {
		fmt.Fprintf(cmd.OutOrStdout(), "Remove all %d movies from your watchlist? [y/N]: ", count)

		var response string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil {
			response = ""
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d movies from your watchlist\n", count)
	return nil
}

func runWatchlistFilters(cmd *cobra.Command, args []string) error {
	names := filters.ListFilters()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No filters configured")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nFilters (%d):\n\n", len(names))
	for i, name := range names {
		prefix := "├"
		if i == len(names)-1 {
			prefix = "╰"
		}
		compiled, _ := filters.GetFilter(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%s── %s: %s\n", prefix, name, compiled.Expression())
	}
	return nil
}

// fetchMovie loads the snapshot stored in the watchlist
func fetchMovie(cmd *cobra.Command, arg string) (tmdb.Movie, error) {
	id, err := parseMovieID(arg)
	if err != nil {
		return tmdb.Movie{}, err
	}

	details, err := tmdbClient.GetMovieDetails(cmd.Context(), id)
	if err != nil {
		return tmdb.Movie{}, err
	}
	return details.Movie, nil
}

func boolToStatus(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
