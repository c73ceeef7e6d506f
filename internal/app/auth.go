package app

import (
	"context"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"github.com/oshokin/lyrics-grabber/internal/client/spotify"
	"github.com/oshokin/lyrics-grabber/internal/config"
	"github.com/oshokin/lyrics-grabber/internal/logger"
)

// ExecuteAuthSetCommand stores the Spotify client credentials in the configuration file.
// Values missing from the flags are prompted for when the input is a terminal.
func ExecuteAuthSetCommand(ctx context.Context, cfg *config.Config, clientID, clientSecret string) {
	if clientID != "" {
		cfg.ClientID = clientID
	}

	if clientSecret != "" {
		cfg.ClientSecret = clientSecret
	}

	if err := promptCredentials(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to read credentials: %v", err)
	}

	if err := config.ValidateCredentials(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to set credentials: %v", err)
	}

	if err := config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
	}

	logger.Infof(ctx, "Credentials saved to %s", cfg.Filename)
	logger.Info(ctx, "")
	logger.Info(ctx, "Check them with:")
	logger.Info(ctx, "lyrics-grabber auth check")
	logger.Info(ctx, "")
	logger.Info(ctx, "Then grab the lyrics of an album:")
	logger.Info(ctx, "lyrics-grabber https://open.spotify.com/album/4m2880jivSbbyEGAKfITCa")
}

// ExecuteAuthCheckCommand authenticates with Spotify and reports the result.
func ExecuteAuthCheckCommand(ctx context.Context, cfg *config.Config) {
	spotifyClient, err := spotify.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Spotify client: %v", err)
	}

	logger.Info(ctx, "Authenticating with Spotify...")

	if err = spotifyClient.Authenticate(ctx); err != nil {
		logger.FatalKV(ctx, describeFailure(err), "error", err)
	}

	logger.Info(ctx, "Authentication successful!")
}

// promptCredentials asks for the credentials that are still empty.
func promptCredentials(cfg *config.Config) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}

	if strings.TrimSpace(cfg.ClientID) == "" {
		prompt := &survey.Input{
			Message: "Spotify client ID:",
		}

		if err := survey.AskOne(prompt, &cfg.ClientID, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if strings.TrimSpace(cfg.ClientSecret) == "" {
		prompt := &survey.Password{
			Message: "Spotify client secret:",
		}

		askOpts := []survey.AskOpt{
			survey.WithValidator(survey.Required),
			survey.WithHideCharacter('*'),
		}

		if err := survey.AskOne(prompt, &cfg.ClientSecret, askOpts...); err != nil {
			return err
		}
	}

	return nil
}
