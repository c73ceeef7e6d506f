package app

import (
	"context"
	"errors"

	lyrics_client "github.com/oshokin/lyrics-grabber/internal/client/lyrics"
	"github.com/oshokin/lyrics-grabber/internal/client/spotify"
	"github.com/oshokin/lyrics-grabber/internal/config"
	"github.com/oshokin/lyrics-grabber/internal/logger"
	lyrics_service "github.com/oshokin/lyrics-grabber/internal/service/lyrics"
)

// ExecuteRootCommand is the entry point for the application.
// It initializes the Spotify and lyrics clients, sets up the packaging service
// and writes the lyrics archive for the provided URL.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, rawURL string) {
	s, err := newService(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize clients: %v", err)
	}

	outcome, err := s.DownloadLyrics(ctx, rawURL)
	if err != nil {
		logger.FatalKV(ctx, describeFailure(err), failureKV(rawURL, err)...)
	}

	s.PrintSummary(ctx, outcome)
}

// newService builds the packaging service from the configuration.
func newService(cfg *config.Config) (lyrics_service.Service, error) {
	spotifyClient, err := spotify.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	lyricsClient, err := lyrics_client.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return lyrics_service.NewService(
		cfg,
		lyrics_service.NewCatalog(cfg, spotifyClient),
		lyricsClient,
		lyrics_service.NewURLResolver(),
	), nil
}

// failureKV returns the diagnostic key/values logged with a fatal error.
func failureKV(rawURL string, err error) []any {
	kvs := []any{"url", rawURL}

	if entity, resolveErr := lyrics_service.NewURLResolver().Resolve(rawURL); resolveErr == nil {
		kvs = append(kvs, "kind", entity.Kind.String(), "id", entity.ID)
	}

	return append(kvs, "error", err)
}

// describeFailure returns the console message for a fatal error.
func describeFailure(err error) string {
	switch {
	case errors.Is(err, lyrics_service.ErrInvalidURL):
		return "Invalid Spotify URL, expected a track, album or playlist link"
	case errors.Is(err, config.ErrMissingCredentials):
		return "Spotify credentials are missing, run 'lyrics-grabber auth set'"
	case errors.Is(err, spotify.ErrUnauthorized):
		return "Spotify rejected the client credentials"
	case errors.Is(err, spotify.ErrNotFound):
		return "The requested item was not found on Spotify"
	case errors.Is(err, context.Canceled):
		return "Interrupted, no archive was written"
	default:
		return "Failed to create the lyrics archive"
	}
}
