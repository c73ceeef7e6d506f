package lyrics

import "errors"

var (
	// ErrInvalidURL indicates that the input is not a Spotify track, album or playlist link.
	ErrInvalidURL = errors.New("invalid Spotify URL")
	// ErrUnknownEntityKind indicates that an entity kind is none of track, album or playlist.
	ErrUnknownEntityKind = errors.New("unknown entity kind")
	// ErrUnavailableTrack indicates a catalog entry whose track was removed, is local or is not a track.
	ErrUnavailableTrack = errors.New("track is unavailable")
	// ErrUnrecognizedTrack indicates a record that matches none of the known track shapes.
	ErrUnrecognizedTrack = errors.New("unrecognized track record")
	// ErrInvalidDuration indicates a track with a negative duration.
	ErrInvalidDuration = errors.New("invalid track duration")
	// ErrInvalidTrackNumber indicates a track number below one.
	ErrInvalidTrackNumber = errors.New("invalid track number")
	// ErrArchiveClosed indicates a write to an archive that was already committed or aborted.
	ErrArchiveClosed = errors.New("archive is already closed")
)
