// Package spotify provides a Go client for the Spotify Web API catalog endpoints
// needed to resolve tracks, albums and playlists.
// It authenticates with the client credentials flow, injects the access token
// through an oauth2 transport, and caches entity metadata for the lifetime of a run.
// Album tracks and playlist items are exposed page by page so callers control pagination.
package spotify
