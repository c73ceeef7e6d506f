package lyrics

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/oshokin/lyrics-grabber/internal/config"
	"github.com/oshokin/lyrics-grabber/internal/logger"
	http_transport "github.com/oshokin/lyrics-grabber/internal/transport/http"
	"github.com/oshokin/lyrics-grabber/internal/utils"
)

// Client defines the interface for looking up lyrics.
type Client interface {
	// FetchLyrics looks up the lyrics of a track. It never fails: problems yield an absent Result.
	FetchLyrics(ctx context.Context, trackID string) Result
}

// ClientImpl implements the Client interface over the lyrics HTTP service.
type ClientImpl struct {
	// baseURL is the lookup endpoint.
	baseURL *url.URL
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// limiter throttles lookups, unlimited when no rate is configured.
	limiter *rate.Limiter
}

// lyricsFormat asks the service for LRC style time tags.
const lyricsFormat = "lrc"

// NewClient creates and returns a new instance of ClientImpl.
func NewClient(cfg *config.Config) (Client, error) {
	baseURL, err := url.Parse(cfg.LyricsAPIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid lyrics API URL: %w", err)
	}

	timeout := cfg.ParsedRequestTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.LyricsRequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.LyricsRequestsPerSecond), 1)
	}

	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		Timeout: timeout,
	}

	return &ClientImpl{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// FetchLyrics looks up the lyrics of a track.
func (c *ClientImpl) FetchLyrics(ctx context.Context, trackID string) Result {
	result := c.fetch(ctx, trackID)
	if reason := result.Reason(); reason != nil {
		logger.Debugf(ctx, "Lyrics for track %s are absent: %v", trackID, reason)
	}

	return result
}

func (c *ClientImpl) fetch(ctx context.Context, trackID string) Result {
	if err := c.limiter.Wait(ctx); err != nil {
		return Absent(fmt.Errorf("%w: %w", ErrTransport, err))
	}

	requestURL := *c.baseURL

	query := requestURL.Query()
	query.Set("trackid", trackID)
	query.Set("format", lyricsFormat)
	requestURL.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), http.NoBody)
	if err != nil {
		return Absent(fmt.Errorf("%w: %w", ErrTransport, err))
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return Absent(fmt.Errorf("%w: %w", ErrTransport, err))
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return Absent(fmt.Errorf("%w: status %d", ErrLyricsNotFound, response.StatusCode))
	}

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return Absent(fmt.Errorf("%w: failed to read body: %w", ErrTransport, err))
	}

	var body payload
	if err = json.Unmarshal(raw, &body); err != nil {
		return Absent(fmt.Errorf("%w: failed to decode body: %w", ErrTransport, err))
	}

	return parsePayload(&body)
}

// parsePayload converts the service payload into a Result.
// A missing sync type counts as synchronized.
func parsePayload(body *payload) Result {
	if body.Error {
		if body.Message != "" {
			return Absent(fmt.Errorf("%w: %s", ErrLyricsNotFound, body.Message))
		}

		return Absent(ErrLyricsNotFound)
	}

	if len(body.Lines) == 0 {
		return Absent(ErrEmptyLyrics)
	}

	isSynced := body.SyncType != SyncTypeUnsynced
	lines := make([]Line, 0, len(body.Lines))

	for _, line := range body.Lines {
		parsed := Line{Words: line.Words}
		if isSynced {
			parsed.TimeTag = line.TimeTag
		}

		lines = append(lines, parsed)
	}

	return Present(&Lyrics{
		IsSynced: isSynced,
		Lines:    lines,
	})
}
