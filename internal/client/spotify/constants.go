package spotify

const (
	// spotifyAPITracksURI is the URI path for track endpoints.
	spotifyAPITracksURI = "tracks"
	// spotifyAPIAlbumsURI is the URI path for album endpoints.
	spotifyAPIAlbumsURI = "albums"
	// spotifyAPIPlaylistsURI is the URI path for playlist endpoints.
	spotifyAPIPlaylistsURI = "playlists"
)

// playlistMetadataFields limits the playlist object to what the catalog needs.
// Items are fetched separately through the paginated endpoint.
const playlistMetadataFields = "id,name,description,owner(display_name),tracks(total)"

const (
	// ItemTypeTrack is the object type of a regular track.
	ItemTypeTrack = "track"
	// ItemTypeEpisode is the object type of a podcast episode found in playlists.
	ItemTypeEpisode = "episode"
)

const (
	// tracksCacheSize defines the maximum number of track entries to cache.
	tracksCacheSize = 1000
	// albumsCacheSize defines the maximum number of album entries to cache.
	albumsCacheSize = 100
	// playlistsCacheSize defines the maximum number of playlist entries to cache.
	playlistsCacheSize = 100
)

// maxErrorBodyLength caps how much of an error response is read for diagnostics.
const maxErrorBodyLength = 16 * 1024
