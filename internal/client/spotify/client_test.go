package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/lyrics-grabber/internal/config"
)

const (
	testAccessToken = "test-access-token"
	testClientID    = "client-id"
	testSecret      = "client-secret"
)

// fakeSpotify is an httptest server imitating the accounts service and the Web API.
type fakeSpotify struct {
	server        *httptest.Server
	tokenCalls    atomic.Int32
	apiCalls      atomic.Int32
	tokenStatus   int
	tokenRelease  chan struct{}
	routes        map[string]func(w http.ResponseWriter, r *http.Request)
	lastRawQuery  atomic.Value
	lastUserAgent atomic.Value
}

// newFakeSpotify creates a fake whose routes must be registered before start is called.
func newFakeSpotify() *fakeSpotify {
	return &fakeSpotify{
		tokenStatus: http.StatusOK,
		routes:      make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}
}

func (f *fakeSpotify) start(t *testing.T) {
	t.Helper()

	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
}

func (f *fakeSpotify) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/token" {
		f.handleToken(w, r)

		return
	}

	f.apiCalls.Add(1)
	f.lastRawQuery.Store(r.URL.RawQuery)
	f.lastUserAgent.Store(r.Header.Get("User-Agent"))

	if r.Header.Get("Authorization") != "Bearer "+testAccessToken {
		writeJSON(w, http.StatusUnauthorized, `{"error":{"status":401,"message":"No token provided"}}`)

		return
	}

	route, ok := f.routes[r.URL.Path]
	if !ok {
		writeJSON(w, http.StatusNotFound, `{"error":{"status":404,"message":"Resource not found"}}`)

		return
	}

	route(w, r)
}

func (f *fakeSpotify) handleToken(w http.ResponseWriter, r *http.Request) {
	f.tokenCalls.Add(1)

	if f.tokenRelease != nil {
		<-f.tokenRelease
	}

	user, password, ok := r.BasicAuth()
	if f.tokenStatus != http.StatusOK || !ok || user != testClientID || password != testSecret {
		writeJSON(w, http.StatusBadRequest, `{"error":"invalid_client","error_description":"Invalid client secret"}`)

		return
	}

	writeJSON(w, http.StatusOK, `{"access_token":"`+testAccessToken+`","token_type":"Bearer","expires_in":3600}`)
}

func (f *fakeSpotify) config() *config.Config {
	return &config.Config{
		ClientID:             testClientID,
		ClientSecret:         testSecret,
		SpotifyAPIURL:        f.server.URL + "/v1",
		SpotifyTokenURL:      f.server.URL + "/token",
		ParsedRequestTimeout: 5 * time.Second,
	}
}

func (f *fakeSpotify) route(path string, status int, body string) {
	f.routes[path] = func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body)) //nolint:errcheck,gosec // Test handler, error is not critical.
}

func newTestClient(t *testing.T, fake *fakeSpotify) Client {
	t.Helper()

	fake.start(t)

	client, err := NewClient(fake.config())
	require.NoError(t, err)

	return client
}

// TestNewClient tests the NewClient function.
func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		config      *config.Config
		expectedErr error
		expectError bool
	}{
		{
			name: "valid config",
			config: &config.Config{
				ClientID:        "id",
				ClientSecret:    "secret",
				SpotifyAPIURL:   config.DefaultSpotifyAPIURL,
				SpotifyTokenURL: config.DefaultSpotifyTokenURL,
			},
		},
		{
			name: "missing secret",
			config: &config.Config{
				ClientID:        "id",
				SpotifyAPIURL:   config.DefaultSpotifyAPIURL,
				SpotifyTokenURL: config.DefaultSpotifyTokenURL,
			},
			expectError: true,
			expectedErr: config.ErrMissingCredentials,
		},
		{
			name: "invalid API URL",
			config: &config.Config{
				ClientID:        "id",
				ClientSecret:    "secret",
				SpotifyAPIURL:   "://invalid-url",
				SpotifyTokenURL: config.DefaultSpotifyTokenURL,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := NewClient(tt.config)

			if !tt.expectError {
				require.NoError(t, err)
				assert.NotNil(t, client)

				return
			}

			require.Error(t, err)
			assert.Nil(t, client)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}
}

// TestClientImpl_Authenticate tests the client credentials flow.
func TestClientImpl_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		fake := newFakeSpotify()
		client := newTestClient(t, fake)

		require.NoError(t, client.Authenticate(t.Context()))
		require.NoError(t, client.Authenticate(t.Context()))
		assert.Equal(t, int32(1), fake.tokenCalls.Load(), "token should be reused")
	})

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()

		fake := newFakeSpotify()
		fake.tokenStatus = http.StatusBadRequest
		client := newTestClient(t, fake)

		err := client.Authenticate(t.Context())
		require.ErrorIs(t, err, ErrUnauthorized)
		assert.Contains(t, err.Error(), "Invalid client secret")
	})

	t.Run("canceled while the token endpoint hangs", func(t *testing.T) {
		t.Parallel()

		fake := newFakeSpotify()
		fake.tokenRelease = make(chan struct{})
		client := newTestClient(t, fake)
		t.Cleanup(func() { close(fake.tokenRelease) })

		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()

		started := time.Now()
		err := client.Authenticate(ctx)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(started), 2*time.Second)
	})

	t.Run("request without prior authentication fetches a token", func(t *testing.T) {
		t.Parallel()

		fake := newFakeSpotify()
		fake.route("/v1/tracks/abc", http.StatusOK, `{"id":"abc","name":"Song","type":"track"}`)
		client := newTestClient(t, fake)

		track, err := client.GetTrack(t.Context(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "Song", track.Name)
		assert.Equal(t, int32(1), fake.tokenCalls.Load())
	})

	t.Run("request with rejected credentials", func(t *testing.T) {
		t.Parallel()

		fake := newFakeSpotify()
		fake.tokenStatus = http.StatusBadRequest
		client := newTestClient(t, fake)

		_, err := client.GetTrack(t.Context(), "abc")
		require.ErrorIs(t, err, ErrUnauthorized)
		assert.Equal(t, int32(0), fake.apiCalls.Load())
	})
}

// TestClientImpl_GetTrack tests decoding and caching of full tracks.
func TestClientImpl_GetTrack(t *testing.T) {
	t.Parallel()

	fake := newFakeSpotify()
	fake.route("/v1/tracks/4uLU6hMCjMI75M1A2tKUQC", http.StatusOK, `{
		"id": "4uLU6hMCjMI75M1A2tKUQC",
		"name": "Never Gonna Give You Up",
		"type": "track",
		"artists": [{"id": "a1", "name": "Rick Astley"}],
		"album": {"id": "al1", "name": "Whenever You Need Somebody", "album_type": "album"},
		"duration_ms": 213573,
		"track_number": 1,
		"disc_number": 1,
		"is_local": false
	}`)

	client := newTestClient(t, fake)
	ctx := context.Background()

	track, err := client.GetTrack(ctx, "4uLU6hMCjMI75M1A2tKUQC")
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", track.Name)
	assert.Equal(t, ItemTypeTrack, track.Type)
	require.Len(t, track.Artists, 1)
	assert.Equal(t, "Rick Astley", track.Artists[0].Name)
	require.NotNil(t, track.Album)
	assert.Equal(t, "Whenever You Need Somebody", track.Album.Name)
	assert.Equal(t, int64(213573), track.DurationMs)
	assert.Equal(t, 1, track.TrackNumber)

	userAgent, _ := fake.lastUserAgent.Load().(string)
	assert.True(t, strings.HasPrefix(userAgent, "lyrics-grabber/"))

	cached, err := client.GetTrack(ctx, "4uLU6hMCjMI75M1A2tKUQC")
	require.NoError(t, err)
	assert.Same(t, track, cached)
	assert.Equal(t, int32(1), fake.apiCalls.Load(), "second lookup should be served from cache")
}

// TestClientImpl_GetAlbum tests album metadata retrieval.
func TestClientImpl_GetAlbum(t *testing.T) {
	t.Parallel()

	fake := newFakeSpotify()
	fake.route("/v1/albums/alb1", http.StatusOK,
		`{"id":"alb1","name":"Album One","album_type":"album","total_tracks":12,"release_date":"1987-11-12"}`)

	client := newTestClient(t, fake)

	album, err := client.GetAlbum(t.Context(), "alb1")
	require.NoError(t, err)
	assert.Equal(t, "Album One", album.Name)
	assert.Equal(t, 12, album.TotalTracks)

	_, err = client.GetAlbum(t.Context(), "alb1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fake.apiCalls.Load())
}

// TestClientImpl_GetAlbumTracks tests paging parameters and the next marker.
func TestClientImpl_GetAlbumTracks(t *testing.T) {
	t.Parallel()

	fake := newFakeSpotify()
	fake.route("/v1/albums/alb1/tracks", http.StatusOK, `{
		"items": [
			{"id": "t1", "name": "First", "type": "track", "track_number": 1, "duration_ms": 1000,
			 "artists": [{"name": "A"}, {"name": "B"}]},
			{"id": "t2", "name": "Second", "type": "track", "track_number": 2, "duration_ms": 2000}
		],
		"limit": 2,
		"offset": 4,
		"total": 10,
		"next": "https://api.spotify.com/v1/albums/alb1/tracks?offset=6&limit=2"
	}`)

	client := newTestClient(t, fake)

	page, err := client.GetAlbumTracks(t.Context(), "alb1", 4, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "First", page.Items[0].Name)
	assert.Len(t, page.Items[0].Artists, 2)
	assert.Equal(t, 4, page.Offset)
	assert.True(t, page.HasNext())

	rawQuery, _ := fake.lastRawQuery.Load().(string)
	assert.Equal(t, "limit=2&offset=4", rawQuery)
}

// TestClientImpl_GetPlaylist tests playlist metadata retrieval.
func TestClientImpl_GetPlaylist(t *testing.T) {
	t.Parallel()

	fake := newFakeSpotify()
	fake.route("/v1/playlists/pl1", http.StatusOK,
		`{"id":"pl1","name":"Road Trip","owner":{"display_name":"someone"},"tracks":{"total":3}}`)

	client := newTestClient(t, fake)

	playlist, err := client.GetPlaylist(t.Context(), "pl1")
	require.NoError(t, err)
	assert.Equal(t, "Road Trip", playlist.Name)
	assert.Equal(t, 3, playlist.TotalTracks())

	rawQuery, _ := fake.lastRawQuery.Load().(string)
	assert.Contains(t, rawQuery, "fields=")
}

// TestClientImpl_GetPlaylistItems tests decoding of unavailable and non-track entries.
func TestClientImpl_GetPlaylistItems(t *testing.T) {
	t.Parallel()

	fake := newFakeSpotify()
	fake.route("/v1/playlists/pl1/tracks", http.StatusOK, `{
		"items": [
			{"added_at": "2024-01-01T00:00:00Z", "track": {"id": "t1", "name": "Song", "type": "track",
			 "album": {"name": "Album"}, "track_number": 3}},
			{"added_at": "2024-01-02T00:00:00Z", "track": null},
			{"added_at": "2024-01-03T00:00:00Z", "track": {"id": "e1", "name": "Episode", "type": "episode"}}
		],
		"limit": 100,
		"offset": 0,
		"total": 3,
		"next": null
	}`)

	client := newTestClient(t, fake)

	page, err := client.GetPlaylistItems(t.Context(), "pl1", 0, 100)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Album", page.Items[0].Track.Album.Name)
	assert.Nil(t, page.Items[1].Track)
	assert.Equal(t, ItemTypeEpisode, page.Items[2].Track.Type)
	assert.False(t, page.HasNext())
}

// TestClientImpl_StatusErrors tests mapping of error statuses to package errors.
func TestClientImpl_StatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		expectedErr error
		errorMsg    string
	}{
		{
			name:        "not found",
			status:      http.StatusNotFound,
			body:        `{"error":{"status":404,"message":"Non existing id"}}`,
			expectedErr: ErrNotFound,
			errorMsg:    "Non existing id",
		},
		{
			name:        "malformed id",
			status:      http.StatusBadRequest,
			body:        `{"error":{"status":400,"message":"Invalid base62 id"}}`,
			expectedErr: ErrNotFound,
			errorMsg:    "Invalid base62 id",
		},
		{
			name:        "expired token",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"status":401,"message":"The access token expired"}}`,
			expectedErr: ErrUnauthorized,
		},
		{
			name:        "server error without body",
			status:      http.StatusBadGateway,
			body:        ``,
			expectedErr: ErrUnexpectedHTTPStatus,
			errorMsg:    "502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := newFakeSpotify()
			fake.route("/v1/albums/x", tt.status, tt.body)
			client := newTestClient(t, fake)

			album, err := client.GetAlbum(t.Context(), "x")
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, album)

			if tt.errorMsg != "" {
				assert.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}

// TestAPIErrorMessage tests extraction of messages from error bodies.
func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "web api error", body: `{"error":{"status":404,"message":"Not found."}}`, expected: "Not found."},
		{name: "accounts error", body: `{"error":"invalid_client","error_description":"Bad"}`, expected: "Bad"},
		{name: "bare error code", body: `{"error":"invalid_request"}`, expected: "invalid_request"},
		{name: "not json", body: `<html>oops</html>`, expected: ""},
		{name: "empty", body: ``, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, apiErrorMessage([]byte(tt.body)))
		})
	}
}
