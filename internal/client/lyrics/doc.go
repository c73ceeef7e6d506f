// Package lyrics provides a client for the public lyrics lookup service keyed by Spotify track IDs.
// Every failure mode (transport errors, non-success statuses, error payloads, empty line lists)
// is folded into an absent Result, so callers can never mistake a missing lyric for a fatal error.
package lyrics
