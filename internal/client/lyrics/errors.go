package lyrics

import "errors"

var (
	// ErrTransport indicates that the lyrics service could not be reached or answered unreadably.
	ErrTransport = errors.New("lyrics service transport error")
	// ErrLyricsNotFound indicates a non-success status or an explicit error flag in the payload.
	ErrLyricsNotFound = errors.New("lyrics not found")
	// ErrEmptyLyrics indicates that the service answered with no lines.
	ErrEmptyLyrics = errors.New("lyrics contain no lines")
)
