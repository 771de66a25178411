package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinesphere/config"
)

// DefaultRepository is the GitHub repository releases are published to
const DefaultRepository = "s0up4200/cinesphere"

var (
	version   = "dev"
	buildTime = "unknown"

	updateRepository string
	updatePrerelease bool
	checkOnly        bool
)

// SetVersion sets the build information reported by the version command
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the version",
	Args:              cobra.NoArgs,
	PersistentPreRunE: initializeStandalone,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cinesphere %s (built %s)\n", version, buildTime)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update cinesphere to the latest GitHub release",
	Args:              cobra.NoArgs,
	PersistentPreRunE: initializeStandalone,
	RunE:              runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateRepository, "repository", DefaultRepository, "GitHub repository (owner/name) to update from")
	updateCmd.Flags().BoolVar(&updatePrerelease, "prerelease", false, "allow updating to pre-releases")
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeStandalone sets up logging for commands that need no config file
func initializeStandalone(cmd *cobra.Command, args []string) error {
	logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
	return nil
}

// currentVersion parses the build version. Development builds have none.
func currentVersion() (semver.Version, error) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("cannot update a development build (version %q)", version)
	}
	return v, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := currentVersion()
	if err != nil {
		return err
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{Prerelease: updatePrerelease})
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}

	latest, found, err := updater.DetectLatest(cmd.Context(), selfupdate.ParseSlug(updateRepository))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", updateRepository)
	}

	logger.Debug().
		Str("current", current.String()).
		Str("latest", latest.Version()).
		Str("repository", updateRepository).
		Msg("Checked for updates")

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(cmd.OutOrStdout(), "cinesphere %s is up to date\n", current)
		return nil
	}

	if checkOnly {
		fmt.Fprintf(cmd.OutOrStdout(), "cinesphere %s is available (current %s): %s\n", latest.Version(), current, latest.URL)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := updater.UpdateTo(cmd.Context(), latest, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	logger.Info().Str("version", latest.Version()).Str("path", exe).Msg("Updated cinesphere")
	if latest.ReleaseNotes != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Release notes:\n%s\n", latest.ReleaseNotes)
	}
	return nil
}
