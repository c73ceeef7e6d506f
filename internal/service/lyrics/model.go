package lyrics

import (
	"strings"
	"time"

	"github.com/oshokin/lyrics-grabber/internal/client/spotify"
)

// EntityKind represents the type of a catalog entity.
type EntityKind string

const (
	// EntityKindTrack represents a single track.
	EntityKindTrack EntityKind = "track"
	// EntityKindAlbum represents an album.
	EntityKindAlbum EntityKind = "album"
	// EntityKindPlaylist represents a playlist.
	EntityKindPlaylist EntityKind = "playlist"
)

// String returns the kind as it appears in catalog URLs.
func (k EntityKind) String() string {
	return string(k)
}

// Title returns the capitalized kind for console output.
func (k EntityKind) Title() string {
	if k == "" {
		return ""
	}

	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// CatalogEntity identifies a track, album or playlist.
type CatalogEntity struct {
	// Kind is the entity type.
	Kind EntityKind
	// ID is the Spotify ID.
	ID string
	// DisplayName is the entity name, empty until metadata is fetched.
	DisplayName string
}

// WithDisplayName returns a copy of the entity carrying the given name.
func (e *CatalogEntity) WithDisplayName(name string) *CatalogEntity {
	return &CatalogEntity{
		Kind:        e.Kind,
		ID:          e.ID,
		DisplayName: name,
	}
}

// String returns a short description suitable for logs.
func (e *CatalogEntity) String() string {
	if e.DisplayName == "" {
		return e.Kind.String() + " " + e.ID
	}

	return e.Kind.String() + " '" + e.DisplayName + "' (" + e.ID + ")"
}

// EntityMetadata holds the catalog metadata needed to name the archive.
type EntityMetadata struct {
	// Name is the entity name.
	Name string
	// ParentAlbumName is the album name for tracks and albums, empty for playlists.
	ParentAlbumName string
	// TotalTracks is the number of tracks reported by the catalog.
	TotalTracks int
}

// RawTrack is one of AlbumTrack, PlaylistTrack or SoloTrack.
type RawTrack interface {
	isRawTrack()
}

// AlbumTrack is a track listed on an album page. It carries no album reference of its own.
type AlbumTrack struct {
	// Track is the simplified track object.
	Track *spotify.SimplifiedTrack
	// AlbumName is the name of the enclosing album.
	AlbumName string
}

// PlaylistTrack is an entry of a playlist page.
type PlaylistTrack struct {
	// Item is the playlist entry.
	Item *spotify.PlaylistItem
}

// SoloTrack is a track resolved directly from a track URL.
type SoloTrack struct {
	// Track is the full track object.
	Track *spotify.Track
}

func (AlbumTrack) isRawTrack()    {}
func (PlaylistTrack) isRawTrack() {}
func (SoloTrack) isRawTrack()     {}

// CanonicalTrack is the normalized track record consumed by the packaging pipeline.
type CanonicalTrack struct {
	// ID is the Spotify track ID.
	ID string
	// Name is the track title.
	Name string
	// AlbumName is the album title.
	AlbumName string
	// ArtistNames lists the performers in catalog order.
	ArtistNames []string
	// Artists is ArtistNames joined for display, e.g. "Queen, David Bowie".
	Artists string
	// DurationMs is the track length in milliseconds.
	DurationMs int64
	// TrackNumber is the position of the track within its album.
	TrackNumber int
}

// EntryStatus describes what happened to a catalog entry during packaging.
type EntryStatus uint8

const (
	// EntryStatusSaved means a lyric file was written to the archive.
	EntryStatusSaved EntryStatus = iota
	// EntryStatusNoLyrics means the lyrics service had nothing for the track.
	EntryStatusNoLyrics
	// EntryStatusSkipped means the record could not be normalized.
	EntryStatusSkipped
)

// String returns a human-readable status.
func (s EntryStatus) String() string {
	switch s {
	case EntryStatusSaved:
		return "saved"
	case EntryStatusNoLyrics:
		return "no lyrics"
	case EntryStatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// EntryResult is the outcome for one catalog entry.
type EntryResult struct {
	// Position is the one-based index of the entry in catalog order.
	Position int
	// Track is the normalized track, nil when the record was skipped.
	Track *CanonicalTrack
	// EntryName is the archive entry name, set when the lyric file was saved.
	EntryName string
	// Size is the size of the saved lyric file in bytes.
	Size int
	// Status is the entry outcome.
	Status EntryStatus
	// Reason explains why no lyric file was saved.
	Reason error
}

// PackagingOutcome summarizes a packaging run.
type PackagingOutcome struct {
	// Entity is the resolved catalog entity.
	Entity *CatalogEntity
	// ArchiveName is the file name of the archive.
	ArchiveName string
	// ArchivePath is the full path of the archive.
	ArchivePath string
	// ArchiveSize is the size of the finished archive in bytes.
	ArchiveSize int64
	// TotalTracks is the number of tracks that survived normalization.
	TotalTracks int
	// SuccessCount is the number of lyric files written.
	SuccessCount int
	// NoLyricsCount is the number of tracks without lyrics.
	NoLyricsCount int
	// SkippedCount is the number of records that could not be normalized.
	SkippedCount int
	// Entries holds the per-entry results in catalog order.
	Entries []EntryResult
	// StartTime is when packaging started.
	StartTime time.Time
	// EndTime is when the archive was finalized.
	EndTime time.Time
}

// HasLyrics reports whether at least one lyric file was written.
func (o *PackagingOutcome) HasLyrics() bool {
	return o != nil && o.SuccessCount > 0
}
