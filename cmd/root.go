package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/lyrics-grabber/internal/app"
	"github.com/oshokin/lyrics-grabber/internal/config"
	"github.com/oshokin/lyrics-grabber/internal/logger"
	"github.com/oshokin/lyrics-grabber/internal/version"
)

// dumpConfigEnv makes the root command print the effective configuration as JSON and exit.
const dumpConfigEnv = config.EnvPrefix + "_DUMP_CONFIG"

// shutdownGracePeriod bounds the wait for the running command after an interrupt.
const shutdownGracePeriod = 10 * time.Second

// usageExample is printed when the command is run without a URL.
const usageExample = `Usage: lyrics-grabber [flags] "<spotify_url>"
Example: lyrics-grabber "https://open.spotify.com/album/4m2880jivSbbyEGAKfITCa"`

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "lyrics-grabber [flags] {url}",
		Short: "Save the lyrics of a Spotify track, album or playlist as a zip of .lrc files.",
		Long: `Lyrics Grabber fetches the tracks behind a Spotify link and packages their
lyrics into a zip archive, one .lrc file per track.
It supports:
- Individual tracks
- Full albums
- Playlists

Synchronized lyrics keep their time tags. Tracks without lyrics are skipped.
Spotify client credentials are read from the configuration file, the .env file
or the SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables.`,
		Version:          version.Short(),
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), usageExample)

				return
			}

			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
			}

			logger.SetLevel(appConfig.ParsedLogLevel)

			if os.Getenv(dumpConfigEnv) != "" {
				dumpConfig(cmd, appConfig)

				return
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	done := make(chan struct{})

	go func() {
		defer close(done)
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()

	// A second signal terminates the process immediately.
	stop()

	select {
	case <-done:
	case <-time.After(shutdownGracePeriod):
		logger.Errorf(context.Background(), "Interrupted, the command did not stop within %s", shutdownGracePeriod)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.SetVersionTemplate("lyrics-grabber " + version.Full() + "\n")

	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"directory to save the archive (the path will be created if it doesn’t exist).")

	rootCmdFlags.BoolP(
		"progress",
		"p",
		false,
		"show a progress bar when the output is a terminal.")

	rootCmdFlags.String(
		"log-level",
		"",
		"log level: debug, info, warn, error.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if level, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		logger.SetLevel(level)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("progress"); flag != nil && flag.Changed {
		cfg.ShowProgress, _ = flags.GetBool("progress")
	}

	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	return config.ValidateConfig(cfg)
}

func dumpConfig(cmd *cobra.Command, cfg *config.Config) {
	data, err := json.Marshal(cfg)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to encode configuration: %v", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
}
