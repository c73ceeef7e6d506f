package lyrics

import (
	"context"
	"fmt"
	"iter"

	"github.com/oshokin/lyrics-grabber/internal/client/spotify"
	"github.com/oshokin/lyrics-grabber/internal/config"
	"github.com/oshokin/lyrics-grabber/internal/logger"
)

// Catalog defines the interface for resolving entities to their metadata and tracks.
type Catalog interface {
	// Authenticate obtains catalog access.
	Authenticate(ctx context.Context) error
	// EntityMetadata fetches the name of an entity.
	EntityMetadata(ctx context.Context, entity *CatalogEntity) (*EntityMetadata, error)
	// ListTracks lazily yields the raw track records of an entity in catalog order.
	// A yielded error ends the sequence. Ranging over it again starts from the first page.
	ListTracks(ctx context.Context, entity *CatalogEntity) iter.Seq2[RawTrack, error]
}

// CatalogImpl implements the Catalog interface on top of the Spotify client.
type CatalogImpl struct {
	// client is the Spotify Web API client.
	client spotify.Client
	// albumPageSize is the number of album tracks requested per page.
	albumPageSize int
	// playlistPageSize is the number of playlist items requested per page.
	playlistPageSize int
}

// pageFetcher requests a single page starting at offset.
type pageFetcher[T any] func(ctx context.Context, offset, limit int) (*spotify.Page[T], error)

// NewCatalog creates and returns a new instance of CatalogImpl.
func NewCatalog(cfg *config.Config, client spotify.Client) Catalog {
	albumPageSize := cfg.AlbumPageSize
	if albumPageSize <= 0 {
		albumPageSize = config.DefaultAlbumPageSize
	}

	playlistPageSize := cfg.PlaylistPageSize
	if playlistPageSize <= 0 {
		playlistPageSize = config.DefaultPlaylistPageSize
	}

	return &CatalogImpl{
		client:           client,
		albumPageSize:    albumPageSize,
		playlistPageSize: playlistPageSize,
	}
}

// Authenticate obtains catalog access.
func (c *CatalogImpl) Authenticate(ctx context.Context) error {
	return c.client.Authenticate(ctx)
}

// EntityMetadata fetches the name of an entity.
func (c *CatalogImpl) EntityMetadata(ctx context.Context, entity *CatalogEntity) (*EntityMetadata, error) {
	switch entity.Kind {
	case EntityKindTrack:
		track, err := c.client.GetTrack(ctx, entity.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get track: %w", err)
		}

		metadata := &EntityMetadata{
			Name:        track.Name,
			TotalTracks: 1,
		}

		if track.Album != nil {
			metadata.ParentAlbumName = track.Album.Name
		}

		return metadata, nil
	case EntityKindAlbum:
		album, err := c.client.GetAlbum(ctx, entity.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get album: %w", err)
		}

		return &EntityMetadata{
			Name:            album.Name,
			ParentAlbumName: album.Name,
			TotalTracks:     album.TotalTracks,
		}, nil
	case EntityKindPlaylist:
		playlist, err := c.client.GetPlaylist(ctx, entity.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get playlist: %w", err)
		}

		return &EntityMetadata{
			Name:        playlist.Name,
			TotalTracks: playlist.TotalTracks(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityKind, entity.Kind)
	}
}

// ListTracks lazily yields the raw track records of an entity in catalog order.
func (c *CatalogImpl) ListTracks(ctx context.Context, entity *CatalogEntity) iter.Seq2[RawTrack, error] {
	switch entity.Kind {
	case EntityKindTrack:
		return c.listSoloTrack(ctx, entity.ID)
	case EntityKindAlbum:
		return c.listAlbumTracks(ctx, entity.ID)
	case EntityKindPlaylist:
		return c.listPlaylistTracks(ctx, entity.ID)
	default:
		return func(yield func(RawTrack, error) bool) {
			yield(nil, fmt.Errorf("%w: %q", ErrUnknownEntityKind, entity.Kind))
		}
	}
}

func (c *CatalogImpl) listSoloTrack(ctx context.Context, trackID string) iter.Seq2[RawTrack, error] {
	return func(yield func(RawTrack, error) bool) {
		track, err := c.client.GetTrack(ctx, trackID)
		if err != nil {
			yield(nil, fmt.Errorf("failed to get track: %w", err))

			return
		}

		yield(SoloTrack{Track: track}, nil)
	}
}

func (c *CatalogImpl) listAlbumTracks(ctx context.Context, albumID string) iter.Seq2[RawTrack, error] {
	return func(yield func(RawTrack, error) bool) {
		// Album pages carry no album reference, the name comes from the album itself.
		album, err := c.client.GetAlbum(ctx, albumID)
		if err != nil {
			yield(nil, fmt.Errorf("failed to get album: %w", err))

			return
		}

		fetch := func(ctx context.Context, offset, limit int) (*spotify.Page[*spotify.SimplifiedTrack], error) {
			return c.client.GetAlbumTracks(ctx, albumID, offset, limit)
		}

		for track, err := range paginate(ctx, c.albumPageSize, fetch) {
			if err != nil {
				yield(nil, fmt.Errorf("failed to get album tracks: %w", err))

				return
			}

			if !yield(AlbumTrack{Track: track, AlbumName: album.Name}, nil) {
				return
			}
		}
	}
}

func (c *CatalogImpl) listPlaylistTracks(ctx context.Context, playlistID string) iter.Seq2[RawTrack, error] {
	return func(yield func(RawTrack, error) bool) {
		fetch := func(ctx context.Context, offset, limit int) (*spotify.Page[*spotify.PlaylistItem], error) {
			return c.client.GetPlaylistItems(ctx, playlistID, offset, limit)
		}

		for item, err := range paginate(ctx, c.playlistPageSize, fetch) {
			if err != nil {
				yield(nil, fmt.Errorf("failed to get playlist items: %w", err))

				return
			}

			if !yield(PlaylistTrack{Item: item}, nil) {
				return
			}
		}
	}
}

// paginate yields the items of every page in order, advancing the offset by the number
// of items received until a page reports no successor. Each range starts at offset zero.
func paginate[T any](ctx context.Context, pageSize int, fetch pageFetcher[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var (
			zero   T
			offset int
		)

		for {
			page, err := fetch(ctx, offset, pageSize)
			if err != nil {
				yield(zero, err)

				return
			}

			logger.Debugf(ctx, "Fetched page at offset %d with %d items", offset, len(page.Items))

			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}

			// An empty page cannot advance the offset.
			if !page.HasNext() || len(page.Items) == 0 {
				return
			}

			offset += len(page.Items)
		}
	}
}

// collectTracks materializes a track sequence, stopping at the first error.
func collectTracks(tracks iter.Seq2[RawTrack, error]) ([]RawTrack, error) {
	var result []RawTrack

	for track, err := range tracks {
		if err != nil {
			return nil, err
		}

		result = append(result, track)
	}

	return result, nil
}
