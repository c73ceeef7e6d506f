package lyrics

import (
	"bytes"
	"fmt"

	lyrics_client "github.com/oshokin/lyrics-grabber/internal/client/lyrics"
	"github.com/oshokin/lyrics-grabber/internal/constants"
	"github.com/oshokin/lyrics-grabber/internal/utils"
)

// lyricFileHeaderFormat is the LRC metadata header followed by a blank line.
const lyricFileHeaderFormat = "[ar:%s]\n[al:%s]\n[ti:%s]\n[length:%s]\n\n"

// BuildLyricFile renders an LRC document for the track.
// Synchronized lines are prefixed with their time tag, every line ends with a newline.
func BuildLyricFile(track *CanonicalTrack, lyrics *lyrics_client.Lyrics) ([]byte, error) {
	length, err := utils.FormatDuration(track.DurationMs)
	if err != nil {
		return nil, fmt.Errorf("failed to format length of %q: %w", track.Name, err)
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, lyricFileHeaderFormat, track.Artists, track.AlbumName, track.Name, length)

	for _, line := range lyrics.Lines {
		if lyrics.IsSynced {
			buf.WriteString("[" + line.TimeTag + "] ")
		}

		buf.WriteString(line.Words)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// EntryName returns the archive entry name, e.g. "01. Song.lrc".
func EntryName(track *CanonicalTrack) string {
	return fmt.Sprintf("%02d. %s%s", track.TrackNumber, utils.SanitizeFilename(track.Name), constants.ExtensionLRC)
}

// ArchiveName returns the archive file name for the entity.
// The entity ID stands in when the display name sanitizes to nothing.
func ArchiveName(entity *CatalogEntity) string {
	name := utils.SanitizeFilename(entity.DisplayName)
	if name == "" {
		name = entity.ID
	}

	return name + constants.ExtensionZIP
}
