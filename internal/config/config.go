package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/lyrics-grabber/internal/constants"
	"github.com/oshokin/lyrics-grabber/internal/logger"
)

// Config holds all configuration settings.
// It is built once per run and passed explicitly to every component.
type Config struct {
	// ClientID is the Spotify application client ID.
	ClientID string `mapstructure:"client_id" json:"-"`
	// ClientSecret is the Spotify application client secret.
	ClientSecret string `mapstructure:"client_secret" json:"-"`
	// OutputPath is the directory where the archive is written.
	OutputPath string `mapstructure:"output_path" json:"output_path"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	// AlbumPageSize is the number of album tracks requested per page.
	AlbumPageSize int `mapstructure:"album_page_size" json:"album_page_size"`
	// PlaylistPageSize is the number of playlist items requested per page.
	PlaylistPageSize int `mapstructure:"playlist_page_size" json:"playlist_page_size"`
	// RequestTimeout bounds every HTTP request (e.g., "30s").
	RequestTimeout string `mapstructure:"request_timeout" json:"request_timeout"`
	// LyricsRequestsPerSecond throttles the lyrics service. Zero disables throttling.
	LyricsRequestsPerSecond float64 `mapstructure:"lyrics_requests_per_second" json:"lyrics_requests_per_second"`
	// ShowProgress enables the progress bar when the output is a terminal.
	ShowProgress bool `mapstructure:"show_progress" json:"show_progress"`
	// ShowSummaryTable enables the per-track table in the final summary.
	ShowSummaryTable bool `mapstructure:"show_summary_table" json:"show_summary_table"`
	// SpotifyAPIURL is the base URL of the Spotify Web API.
	SpotifyAPIURL string `mapstructure:"spotify_api_url" json:"spotify_api_url"`
	// SpotifyTokenURL is the OAuth token endpoint.
	SpotifyTokenURL string `mapstructure:"spotify_token_url" json:"spotify_token_url"`
	// LyricsAPIURL is the base URL of the lyrics lookup service.
	LyricsAPIURL string `mapstructure:"lyrics_api_url" json:"lyrics_api_url"`
	// Filename is the configuration file that was read, empty when none was found.
	Filename string `mapstructure:"-" json:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-" json:"-"`
	// ParsedRequestTimeout is the parsed request timeout.
	ParsedRequestTimeout time.Duration `mapstructure:"-" json:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".lyrics-grabber.yaml"

	// DefaultEnvFilename is the dotenv file read from the working directory.
	DefaultEnvFilename = ".env"

	// EnvPrefix prefixes environment overrides, e.g. LYRICS_GRABBER_OUTPUT_PATH.
	EnvPrefix = "LYRICS_GRABBER"

	// DefaultSpotifyAPIURL is the Spotify Web API base URL.
	DefaultSpotifyAPIURL = "https://api.spotify.com/v1"

	// DefaultSpotifyTokenURL is the Spotify accounts token endpoint.
	DefaultSpotifyTokenURL = "https://accounts.spotify.com/api/token" //nolint:gosec // Not a credential.

	// DefaultLyricsAPIURL is the lyrics lookup service base URL.
	DefaultLyricsAPIURL = "https://spotify-lyrics-api-pi.vercel.app/"

	// DefaultAlbumPageSize is the album tracks page size used by the catalog.
	DefaultAlbumPageSize = 50

	// DefaultPlaylistPageSize is the playlist items page size used by the catalog.
	DefaultPlaylistPageSize = 100

	// Page size upper bounds accepted by the catalog API.
	maxAlbumPageSize    = 50
	maxPlaylistPageSize = 100
)

// Environment variables holding the credentials.
const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET" //nolint:gosec // Variable name, not a credential.
)

// Static error definitions for better error handling.
var (
	// ErrMissingCredentials indicates that the client ID or secret are not configured.
	ErrMissingCredentials = errors.New("spotify client ID and client secret must be configured")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidAlbumPageSize indicates that the album page size is out of range.
	ErrInvalidAlbumPageSize = errors.New("invalid album_page_size")
	// ErrInvalidPlaylistPageSize indicates that the playlist page size is out of range.
	ErrInvalidPlaylistPageSize = errors.New("invalid playlist_page_size")
	// ErrInvalidRequestTimeout indicates that the request timeout is not positive.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrInvalidLyricsRate indicates that the lyrics request rate is negative.
	ErrInvalidLyricsRate = errors.New("lyrics_requests_per_second cannot be negative")
	// ErrEmptyOutputPath indicates that the output path is blank.
	ErrEmptyOutputPath = errors.New("output_path cannot be empty")
)

// LoadConfig loads configuration from defaults, the optional YAML file, the .env file and the environment.
// A missing default file is tolerated, a missing explicitly requested file is an error.
func LoadConfig(configFilename string) (*Config, error) {
	explicit := configFilename != ""
	if !explicit {
		configFilename = DefaultConfigFilename
	}

	if err := godotenv.Load(DefaultEnvFilename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DefaultEnvFilename, err)
	}

	v := newViper()
	v.SetConfigFile(configFilename)

	filename := configFilename

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}

		filename = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Filename = filename

	return &cfg, nil
}

// newViper builds a viper instance with defaults and environment bindings.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("output_path", ".")
	v.SetDefault("log_level", "info")
	v.SetDefault("album_page_size", DefaultAlbumPageSize)
	v.SetDefault("playlist_page_size", DefaultPlaylistPageSize)
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("lyrics_requests_per_second", 0)
	v.SetDefault("show_progress", false)
	v.SetDefault("show_summary_table", true)
	v.SetDefault("spotify_api_url", DefaultSpotifyAPIURL)
	v.SetDefault("spotify_token_url", DefaultSpotifyTokenURL)
	v.SetDefault("lyrics_api_url", DefaultLyricsAPIURL)

	// The conventional variable names win over the prefixed ones.
	_ = v.BindEnv("client_id", EnvClientID, EnvPrefix+"_CLIENT_ID")
	_ = v.BindEnv("client_secret", EnvClientSecret, EnvPrefix+"_CLIENT_SECRET")

	return v
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	if err := ValidateCredentials(cfg); err != nil {
		return err
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if strings.TrimSpace(cfg.OutputPath) == "" {
		return ErrEmptyOutputPath
	}

	if cfg.AlbumPageSize < 1 || cfg.AlbumPageSize > maxAlbumPageSize {
		return fmt.Errorf("%w: must be between 1 and %d", ErrInvalidAlbumPageSize, maxAlbumPageSize)
	}

	if cfg.PlaylistPageSize < 1 || cfg.PlaylistPageSize > maxPlaylistPageSize {
		return fmt.Errorf("%w: must be between 1 and %d", ErrInvalidPlaylistPageSize, maxPlaylistPageSize)
	}

	var err error

	cfg.ParsedRequestTimeout, err = time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse request timeout: %w", err)
	}

	if cfg.ParsedRequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	if cfg.LyricsRequestsPerSecond < 0 {
		return ErrInvalidLyricsRate
	}

	return nil
}

// ValidateCredentials checks that both halves of the client credentials are present.
func ValidateCredentials(cfg *Config) error {
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return ErrMissingCredentials
	}

	return nil
}

// SaveConfig stores the credentials in the configuration file while preserving the original format and order.
// The file is created when it does not exist yet.
func SaveConfig(cfg *Config) error {
	configFile := cfg.Filename
	if configFile == "" {
		configFile = DefaultConfigFilename
	}

	credentials := map[string]string{
		"client_id":     cfg.ClientID,
		"client_secret": cfg.ClientSecret,
	}

	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		originalContent = nil
	}

	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	upsertValuesInNode(&node, credentials, []string{"client_id", "client_secret"})

	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	// The file holds a secret, so it is readable by the owner only.
	if err = os.WriteFile(configFile, newContent, constants.PrivateFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg.Filename = configFile

	return nil
}

// upsertValuesInNode updates scalar values in the top-level mapping of a YAML document,
// appending keys that are missing in the given order.
func upsertValuesInNode(node *yaml.Node, values map[string]string, order []string) {
	if node.Kind != yaml.DocumentNode {
		*node = yaml.Node{Kind: yaml.DocumentNode}
	}

	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		node.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	mapNode := node.Content[0]
	seen := make(map[string]struct{}, len(values))

	// Key-value pairs are stored as alternating nodes.
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		value, ok := values[keyNode.Value]
		if !ok {
			continue
		}

		seen[keyNode.Value] = struct{}{}
		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = "!!str"
		valueNode.Value = value

		if valueNode.Style == 0 {
			valueNode.Style = yaml.DoubleQuotedStyle
		}
	}

	for _, key := range order {
		if _, ok := seen[key]; ok {
			continue
		}

		mapNode.Content = append(mapNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values[key], Style: yaml.DoubleQuotedStyle},
		)
	}
}
