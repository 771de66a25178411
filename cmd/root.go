package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/cinesphere/catalog"
	"github.com/s0up4200/cinesphere/config"
	"github.com/s0up4200/cinesphere/filter"
	"github.com/s0up4200/cinesphere/insight"
	"github.com/s0up4200/cinesphere/tmdb"
	"github.com/s0up4200/cinesphere/watchlist"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client
	insights   *insight.Client
	store      *watchlist.Store
	filters    *filter.Manager
	cat        *catalog.Catalog
	formatter  *catalog.ConsoleFormatter

	// Command flags
	timeout     time.Duration
	showDetails bool
	showImages  bool

	// fs backs the watchlist; tests swap in a memory filesystem
	fs afero.Fs = afero.NewOsFs()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinesphere",
	Short: "Discover movies from TMDB with AI commentary and a local watchlist",
	Long: `cinesphere is a CLI for browsing TMDB: trending, popular and top rated
movies, search, genres and movie details with a short Gemini generated
verdict. Movies can be saved to a local watchlist and filtered with
expressions such as "VoteAverage >= 7 and year() > 2010".`,
	PersistentPreRunE: initializeApp,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Ctrl-C cancels the command context and with it any in-flight request.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorMessage(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "TMDB request timeout (overrides tmdb.timeout)")
	rootCmd.PersistentFlags().BoolVar(&showDetails, "details", false, "show movie overviews in lists")
	rootCmd.PersistentFlags().BoolVar(&showImages, "images", false, "show poster and backdrop URLs")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override timeout from command line if specified
	if cmd.Flags().Changed("timeout") {
		cfg.TMDB.Timeout = timeout
	}

	// Create TMDB client
	tmdbClient, err = tmdb.NewClient(cfg.TMDB.APIKey, logger,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	// Create Gemini client if enabled
	insights = insight.Disabled(logger)
	if cfg.Gemini.Active() {
		client, err := insight.NewClient(cmd.Context(), cfg.Gemini.APIKey, logger,
			insight.WithModel(cfg.Gemini.Model),
			insight.WithTemperature(cfg.Gemini.Temperature),
			insight.WithTimeout(cfg.Gemini.Timeout),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create Gemini client, continuing with fallback insights")
		} else {
			insights = client
			logger.Debug().Str("model", cfg.Gemini.Model).Msg("Gemini integration enabled")
		}
	}

	store = watchlist.New(watchlist.NewFileStorage(fs, cfg.Watchlist.Dir), logger, watchlist.WithKey(cfg.Watchlist.Key))

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("failed to load filters: %w", err)
	}

	cat = catalog.New(tmdbClient, insights, store, logger)
	formatter = catalog.NewConsoleFormatter(tmdbClient)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stderr
	} else {
		// Console format, without colour when stderr is redirected
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !isTerminal(os.Stderr),
		}
	}

	if cfg.File.Path != "" {
		output = zerolog.MultiLevelWriter(output, &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSize,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAge,
			Compress:   cfg.File.Compress,
		})
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// errorMessage turns TMDB failures into guidance and leaves other errors as is
func errorMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, tmdb.ErrInvalidPage), tmdb.IsTransport(err):
		return tmdb.UserMessage(err)
	}
	if _, ok := tmdb.StatusCode(err); ok {
		return tmdb.UserMessage(err)
	}
	return err.Error()
}

// formatOptions collects the output flags
func formatOptions() catalog.FormatOptions {
	return catalog.FormatOptions{
		ShowDetails: showDetails,
		ShowImages:  showImages,
	}
}

// parseMovieID parses a TMDB movie ID argument
func parseMovieID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id: %q", arg)
	}
	return id, nil
}

// printOutput writes formatter output, which may lack a trailing newline
func printOutput(cmd *cobra.Command, s string) {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	fmt.Fprint(cmd.OutOrStdout(), s)
}
