package spotify

// Page represents a Spotify paging object.
type Page[T any] struct {
	// Items holds the entries of the current page.
	Items []T `json:"items"`
	// Limit is the maximum number of items requested.
	Limit int `json:"limit"`
	// Offset is the index of the first item of the page.
	Offset int `json:"offset"`
	// Total is the number of items available.
	Total int `json:"total"`
	// Next is the URL of the next page, nil on the last page.
	Next *string `json:"next"`
}

// HasNext reports whether another page follows this one.
func (p *Page[T]) HasNext() bool {
	return p != nil && p.Next != nil && *p.Next != ""
}

// Artist represents a simplified artist object.
type Artist struct {
	// ID is the Spotify ID of the artist.
	ID string `json:"id"`
	// Name is the artist name.
	Name string `json:"name"`
}

// AlbumRef represents the simplified album embedded into a full track.
type AlbumRef struct {
	// ID is the Spotify ID of the album.
	ID string `json:"id"`
	// Name is the album title.
	Name string `json:"name"`
	// AlbumType is one of album, single or compilation.
	AlbumType string `json:"album_type"`
}

// Track represents a full track object, as returned by the track and playlist items endpoints.
// Playlist items may also carry episodes decoded into this shape, distinguished by Type.
type Track struct {
	// ID is the Spotify ID of the track. It is empty for local files.
	ID string `json:"id"`
	// Name is the track title.
	Name string `json:"name"`
	// Type is the object type, "track" or "episode".
	Type string `json:"type"`
	// Artists lists the performers in API order.
	Artists []*Artist `json:"artists"`
	// Album is the album the track belongs to.
	Album *AlbumRef `json:"album"`
	// DurationMs is the track length in milliseconds.
	DurationMs int64 `json:"duration_ms"`
	// TrackNumber is the position of the track on its album disc.
	TrackNumber int `json:"track_number"`
	// DiscNumber is the disc the track is on.
	DiscNumber int `json:"disc_number"`
	// IsLocal is set for local files added to playlists.
	IsLocal bool `json:"is_local"`
}

// SimplifiedTrack represents the track object returned by the album tracks endpoint.
// It carries no album reference.
type SimplifiedTrack struct {
	// ID is the Spotify ID of the track.
	ID string `json:"id"`
	// Name is the track title.
	Name string `json:"name"`
	// Type is the object type.
	Type string `json:"type"`
	// Artists lists the performers in API order.
	Artists []*Artist `json:"artists"`
	// DurationMs is the track length in milliseconds.
	DurationMs int64 `json:"duration_ms"`
	// TrackNumber is the position of the track on its album disc.
	TrackNumber int `json:"track_number"`
	// DiscNumber is the disc the track is on.
	DiscNumber int `json:"disc_number"`
	// IsLocal is set for local files.
	IsLocal bool `json:"is_local"`
}

// Album represents a full album object.
type Album struct {
	// ID is the Spotify ID of the album.
	ID string `json:"id"`
	// Name is the album title.
	Name string `json:"name"`
	// AlbumType is one of album, single or compilation.
	AlbumType string `json:"album_type"`
	// Artists lists the album artists.
	Artists []*Artist `json:"artists"`
	// TotalTracks is the number of tracks on the album.
	TotalTracks int `json:"total_tracks"`
	// ReleaseDate is the release date as reported by the API.
	ReleaseDate string `json:"release_date"`
}

// PlaylistOwner represents the user owning a playlist.
type PlaylistOwner struct {
	// DisplayName is the public name of the owner.
	DisplayName string `json:"display_name"`
}

// PlaylistTracksInfo holds the playlist items summary embedded into the playlist object.
type PlaylistTracksInfo struct {
	// Total is the number of items in the playlist.
	Total int `json:"total"`
}

// Playlist represents a playlist object.
type Playlist struct {
	// ID is the Spotify ID of the playlist.
	ID string `json:"id"`
	// Name is the playlist title.
	Name string `json:"name"`
	// Description is the playlist description.
	Description string `json:"description"`
	// Owner is the user owning the playlist.
	Owner *PlaylistOwner `json:"owner"`
	// Tracks summarizes the playlist items.
	Tracks *PlaylistTracksInfo `json:"tracks"`
}

// TotalTracks returns the number of items in the playlist.
func (p *Playlist) TotalTracks() int {
	if p == nil || p.Tracks == nil {
		return 0
	}

	return p.Tracks.Total
}

// PlaylistItem represents a single entry of a playlist.
type PlaylistItem struct {
	// AddedAt is the time the entry was added.
	AddedAt string `json:"added_at"`
	// IsLocal is set for local files.
	IsLocal bool `json:"is_local"`
	// Track is the entry content, nil when it is no longer available.
	Track *Track `json:"track"`
}
