package spotify

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/oshokin/lyrics-grabber/internal/config"
	"github.com/oshokin/lyrics-grabber/internal/logger"
	http_transport "github.com/oshokin/lyrics-grabber/internal/transport/http"
	"github.com/oshokin/lyrics-grabber/internal/utils"
)

// Client defines the interface for interacting with the Spotify Web API catalog.
type Client interface {
	// Authenticate obtains an application access token with the client credentials flow.
	Authenticate(ctx context.Context) error
	// GetTrack retrieves a full track object.
	GetTrack(ctx context.Context, trackID string) (*Track, error)
	// GetAlbum retrieves a full album object.
	GetAlbum(ctx context.Context, albumID string) (*Album, error)
	// GetAlbumTracks retrieves one page of album tracks.
	GetAlbumTracks(ctx context.Context, albumID string, offset, limit int) (*Page[*SimplifiedTrack], error)
	// GetPlaylist retrieves playlist metadata without its items.
	GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error)
	// GetPlaylistItems retrieves one page of playlist items.
	GetPlaylistItems(ctx context.Context, playlistID string, offset, limit int) (*Page[*PlaylistItem], error)
}

// ClientImpl implements the Client interface for interacting with the Spotify Web API.
type ClientImpl struct {
	// baseURL is the base URL for API requests.
	baseURL string
	// httpClient is the HTTP client that attaches the access token to every request.
	httpClient *http.Client
	// tokenSource issues and refreshes the application access token.
	tokenSource oauth2.TokenSource
	// tracksCache caches track metadata so a track resolved for its name is not requested again.
	tracksCache *lru.Cache[string, *Track]
	// albumsCache caches album metadata.
	albumsCache *lru.Cache[string, *Album]
	// playlistsCache caches playlist metadata.
	playlistsCache *lru.Cache[string, *Playlist]
}

// NewClient creates and returns a new instance of ClientImpl.
// No network call is made until Authenticate or the first request.
func NewClient(cfg *config.Config) (Client, error) {
	if err := config.ValidateCredentials(cfg); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(cfg.SpotifyAPIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Spotify API URL: %w", err)
	}

	if _, err = url.Parse(cfg.SpotifyTokenURL); err != nil {
		return nil, fmt.Errorf("invalid Spotify token URL: %w", err)
	}

	timeout := cfg.ParsedRequestTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	baseTransport := http_transport.NewUserAgentInjector(
		http_transport.NewLogTransport(http.DefaultTransport, 0),
		utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent))

	// The token endpoint is reached through the same logging transport without the bearer token.
	tokenContext := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{
		Transport: baseTransport,
		Timeout:   timeout,
	})

	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.SpotifyTokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	tokenSource := credentials.TokenSource(tokenContext)

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: tokenSource,
			Base:   baseTransport,
		},
		Timeout: timeout,
	}

	tracksCache, err := lru.New[string, *Track](tracksCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracks cache: %w", err)
	}

	albumsCache, err := lru.New[string, *Album](albumsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create albums cache: %w", err)
	}

	playlistsCache, err := lru.New[string, *Playlist](playlistsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlists cache: %w", err)
	}

	return &ClientImpl{
		baseURL:        baseURL.String(),
		httpClient:     httpClient,
		tokenSource:    tokenSource,
		tracksCache:    tracksCache,
		albumsCache:    albumsCache,
		playlistsCache: playlistsCache,
	}, nil
}

// Authenticate obtains an application access token.
// The token is reused and refreshed transparently by later requests.
// It returns as soon as ctx is done, even if the token request is still pending.
func (c *ClientImpl) Authenticate(ctx context.Context) error {
	type tokenResult struct {
		token *oauth2.Token
		err   error
	}

	results := make(chan tokenResult, 1)

	go func() {
		token, err := c.tokenSource.Token()
		results <- tokenResult{token: token, err: err}
	}()

	var result tokenResult

	select {
	case <-ctx.Done():
		return fmt.Errorf("failed to obtain access token: %w", ctx.Err())
	case result = <-results:
	}

	if result.err != nil {
		return wrapTransportError(result.err)
	}

	token := result.token
	if token.AccessToken == "" {
		return fmt.Errorf("%w: %w", ErrUnauthorized, ErrEmptyToken)
	}

	logger.Debugf(ctx, "Access token obtained, expires at %s", token.Expiry.Format("15:04:05"))

	return nil
}

// GetTrack retrieves a full track object.
// Uses an LRU cache to avoid redundant API calls for the same track.
func (c *ClientImpl) GetTrack(ctx context.Context, trackID string) (*Track, error) {
	if cached, ok := c.tracksCache.Get(trackID); ok {
		logger.Debugf(ctx, "Track cache hit for ID: %s", trackID)

		return cached, nil
	}

	track, err := fetchJSON[Track](c, ctx, nil, spotifyAPITracksURI, trackID)
	if err != nil {
		return nil, err
	}

	c.tracksCache.Add(trackID, track)

	return track, nil
}

// GetAlbum retrieves a full album object.
// Uses an LRU cache to avoid redundant API calls for the same album.
func (c *ClientImpl) GetAlbum(ctx context.Context, albumID string) (*Album, error) {
	if cached, ok := c.albumsCache.Get(albumID); ok {
		logger.Debugf(ctx, "Album cache hit for ID: %s", albumID)

		return cached, nil
	}

	album, err := fetchJSON[Album](c, ctx, nil, spotifyAPIAlbumsURI, albumID)
	if err != nil {
		return nil, err
	}

	c.albumsCache.Add(albumID, album)

	return album, nil
}

// GetAlbumTracks retrieves one page of album tracks.
// Pages are not cached.
func (c *ClientImpl) GetAlbumTracks(
	ctx context.Context,
	albumID string,
	offset, limit int,
) (*Page[*SimplifiedTrack], error) {
	return fetchJSON[Page[*SimplifiedTrack]](
		c,
		ctx,
		pageQuery(offset, limit),
		spotifyAPIAlbumsURI,
		albumID,
		spotifyAPITracksURI,
	)
}

// GetPlaylist retrieves playlist metadata without its items.
// Uses an LRU cache to avoid redundant API calls for the same playlist.
func (c *ClientImpl) GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	if cached, ok := c.playlistsCache.Get(playlistID); ok {
		logger.Debugf(ctx, "Playlist cache hit for ID: %s", playlistID)

		return cached, nil
	}

	query := url.Values{}
	query.Set("fields", playlistMetadataFields)

	playlist, err := fetchJSON[Playlist](c, ctx, query, spotifyAPIPlaylistsURI, playlistID)
	if err != nil {
		return nil, err
	}

	c.playlistsCache.Add(playlistID, playlist)

	return playlist, nil
}

// GetPlaylistItems retrieves one page of playlist items.
// Pages are not cached.
func (c *ClientImpl) GetPlaylistItems(
	ctx context.Context,
	playlistID string,
	offset, limit int,
) (*Page[*PlaylistItem], error) {
	return fetchJSON[Page[*PlaylistItem]](
		c,
		ctx,
		pageQuery(offset, limit),
		spotifyAPIPlaylistsURI,
		playlistID,
		spotifyAPITracksURI,
	)
}

func pageQuery(offset, limit int) url.Values {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	return query
}
