package lyrics

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/oshokin/lyrics-grabber/internal/client/spotify"
)

// artistSeparator joins performer names for display.
const artistSeparator = ", "

// NormalizeTrack converts any raw track shape into a CanonicalTrack.
// The result shares no slices with the input.
func NormalizeTrack(raw RawTrack) (*CanonicalTrack, error) {
	switch record := raw.(type) {
	case AlbumTrack:
		if record.Track == nil {
			return nil, fmt.Errorf("%w: empty album track", ErrUnrecognizedTrack)
		}

		return newCanonicalTrack(&trackFields{
			id:          record.Track.ID,
			name:        record.Track.Name,
			kind:        record.Track.Type,
			albumName:   record.AlbumName,
			artists:     record.Track.Artists,
			durationMs:  record.Track.DurationMs,
			trackNumber: record.Track.TrackNumber,
			isLocal:     record.Track.IsLocal,
		})
	case PlaylistTrack:
		if record.Item == nil {
			return nil, fmt.Errorf("%w: empty playlist item", ErrUnrecognizedTrack)
		}

		// Removed tracks come back as items without a track.
		if record.Item.Track == nil {
			return nil, fmt.Errorf("%w: playlist item has no track", ErrUnavailableTrack)
		}

		return normalizeFullTrack(record.Item.Track, record.Item.IsLocal)
	case SoloTrack:
		if record.Track == nil {
			return nil, fmt.Errorf("%w: empty track", ErrUnrecognizedTrack)
		}

		return normalizeFullTrack(record.Track, false)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnrecognizedTrack, raw)
	}
}

// trackFields holds the values shared by every raw track shape.
type trackFields struct {
	id          string
	name        string
	kind        string
	albumName   string
	artists     []*spotify.Artist
	durationMs  int64
	trackNumber int
	isLocal     bool
}

func normalizeFullTrack(track *spotify.Track, isLocalItem bool) (*CanonicalTrack, error) {
	var albumName string
	if track.Album != nil {
		albumName = track.Album.Name
	}

	return newCanonicalTrack(&trackFields{
		id:          track.ID,
		name:        track.Name,
		kind:        track.Type,
		albumName:   albumName,
		artists:     track.Artists,
		durationMs:  track.DurationMs,
		trackNumber: track.TrackNumber,
		isLocal:     track.IsLocal || isLocalItem,
	})
}

func newCanonicalTrack(fields *trackFields) (*CanonicalTrack, error) {
	if fields.kind != "" && fields.kind != spotify.ItemTypeTrack {
		return nil, fmt.Errorf("%w: %s %q is not a track", ErrUnavailableTrack, fields.kind, fields.name)
	}

	if fields.isLocal {
		return nil, fmt.Errorf("%w: %q is a local file", ErrUnavailableTrack, fields.name)
	}

	if fields.id == "" {
		return nil, fmt.Errorf("%w: %q has no ID", ErrUnavailableTrack, fields.name)
	}

	if fields.durationMs < 0 {
		return nil, fmt.Errorf("%w: %d ms for %q", ErrInvalidDuration, fields.durationMs, fields.name)
	}

	if fields.trackNumber < 1 {
		return nil, fmt.Errorf("%w: %d for %q", ErrInvalidTrackNumber, fields.trackNumber, fields.name)
	}

	artistNames := lo.FilterMap(fields.artists, func(artist *spotify.Artist, _ int) (string, bool) {
		if artist == nil {
			return "", false
		}

		return artist.Name, true
	})

	return &CanonicalTrack{
		ID:          fields.id,
		Name:        fields.name,
		AlbumName:   fields.albumName,
		ArtistNames: artistNames,
		Artists:     strings.Join(artistNames, artistSeparator),
		DurationMs:  fields.durationMs,
		TrackNumber: fields.trackNumber,
	}, nil
}
