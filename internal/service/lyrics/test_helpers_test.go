package lyrics

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	lyrics_client "github.com/oshokin/lyrics-grabber/internal/client/lyrics"
	mock_lyrics "github.com/oshokin/lyrics-grabber/internal/client/lyrics/mocks"
	"github.com/oshokin/lyrics-grabber/internal/client/spotify"
	mock_spotify "github.com/oshokin/lyrics-grabber/internal/client/spotify/mocks"
	"github.com/oshokin/lyrics-grabber/internal/config"
	"github.com/oshokin/lyrics-grabber/internal/constants"
)

// testServiceSetup encapsulates common test dependencies and configuration.
type testServiceSetup struct {
	ctrl          *gomock.Controller
	spotifyClient *mock_spotify.MockClient
	lyricsClient  *mock_lyrics.MockClient
	service       Service
	config        *config.Config
	tempDir       string
}

// newTestServiceSetup creates a service over mocked clients with optional config overrides.
func newTestServiceSetup(t *testing.T, configOverrides ...func(*config.Config)) *testServiceSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	spotifyClient := mock_spotify.NewMockClient(ctrl)
	lyricsClient := mock_lyrics.NewMockClient(ctrl)
	tempDir := t.TempDir()

	cfg := &config.Config{
		OutputPath:       tempDir,
		AlbumPageSize:    config.DefaultAlbumPageSize,
		PlaylistPageSize: config.DefaultPlaylistPageSize,
		ShowSummaryTable: true,
	}

	for _, override := range configOverrides {
		override(cfg)
	}

	service := NewService(cfg, NewCatalog(cfg, spotifyClient), lyricsClient, NewURLResolver())

	return &testServiceSetup{
		ctrl:          ctrl,
		spotifyClient: spotifyClient,
		lyricsClient:  lyricsClient,
		service:       service,
		config:        cfg,
		tempDir:       tempDir,
	}
}

// syncedLyrics builds present lyrics with time tags.
func syncedLyrics(lines ...lyrics_client.Line) lyrics_client.Result {
	return lyrics_client.Present(&lyrics_client.Lyrics{IsSynced: true, Lines: lines})
}

// fullTrack builds a full track object as returned by the track endpoint.
func fullTrack(id, name, albumName string, number int, artists ...string) *spotify.Track {
	return &spotify.Track{
		ID:          id,
		Name:        name,
		Type:        spotify.ItemTypeTrack,
		Artists:     artistList(artists...),
		Album:       &spotify.AlbumRef{ID: "album-" + id, Name: albumName},
		DurationMs:  200000,
		TrackNumber: number,
	}
}

// simplifiedTrack builds a track object as returned by the album tracks endpoint.
func simplifiedTrack(id, name string, number int, artists ...string) *spotify.SimplifiedTrack {
	return &spotify.SimplifiedTrack{
		ID:          id,
		Name:        name,
		Type:        spotify.ItemTypeTrack,
		Artists:     artistList(artists...),
		DurationMs:  185000,
		TrackNumber: number,
	}
}

func artistList(names ...string) []*spotify.Artist {
	artists := make([]*spotify.Artist, 0, len(names))
	for _, name := range names {
		artists = append(artists, &spotify.Artist{ID: strings.ToLower(name), Name: name})
	}

	return artists
}

// page builds a result page. A nil next marks the last page.
func page[T any](next *string, items ...T) *spotify.Page[T] {
	return &spotify.Page[T]{Items: items, Next: next}
}

func nextPage() *string {
	next := "https://api.spotify.com/v1/next"

	return &next
}

// readArchive returns the entry names and contents of a zip file in stored order.
func readArchive(t *testing.T, path string) ([]string, map[string]string) {
	t.Helper()

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)

	t.Cleanup(func() { _ = reader.Close() })

	names := make([]string, 0, len(reader.File))
	contents := make(map[string]string, len(reader.File))

	for _, file := range reader.File {
		rc, openErr := file.Open()
		require.NoError(t, openErr)

		data, readErr := io.ReadAll(rc)
		require.NoError(t, readErr)
		require.NoError(t, rc.Close())

		names = append(names, file.Name)
		contents[file.Name] = string(data)
	}

	return names, contents
}

// listDir returns the names of the files in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names
}

// partFiles returns the leftover temporary archives in dir.
func partFiles(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*"+constants.ExtensionPart))
	require.NoError(t, err)

	return matches
}
