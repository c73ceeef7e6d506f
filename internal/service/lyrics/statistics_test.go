package lyrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	lyrics_client "github.com/oshokin/lyrics-grabber/internal/client/lyrics"
)

// TestRenderEntriesTable tests that every entry appears with its status and details.
func TestRenderEntriesTable(t *testing.T) {
	t.Parallel()

	rendered := renderEntriesTable([]EntryResult{
		{
			Position:  1,
			Track:     &CanonicalTrack{Name: "Intro", ArtistNames: []string{"A", "B"}, Artists: "A, B"},
			EntryName: "01. Intro.lrc",
			Size:      2048,
			Status:    EntryStatusSaved,
		},
		{
			Position: 2,
			Track:    &CanonicalTrack{Name: "Interlude"},
			Status:   EntryStatusNoLyrics,
			Reason:   lyrics_client.ErrEmptyLyrics,
		},
		{
			Position: 3,
			Status:   EntryStatusSkipped,
			Reason:   ErrUnavailableTrack,
		},
	})

	assert.Contains(t, rendered, "STATUS")
	assert.Contains(t, rendered, "01. Intro.lrc (2.0 kB)")
	assert.Contains(t, rendered, "A, B")
	assert.Contains(t, rendered, "no lyrics")
	assert.Contains(t, rendered, lyrics_client.ErrEmptyLyrics.Error())
	assert.Contains(t, rendered, "skipped")
	assert.Contains(t, rendered, ErrUnavailableTrack.Error())
}

// TestFormatElapsed tests elapsed time formatting.
func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{duration: 250 * time.Millisecond, expected: "250ms"},
		{duration: 12 * time.Second, expected: "12s"},
		{duration: 3*time.Minute + 4*time.Second, expected: "3m 4s"},
		{duration: 75 * time.Minute, expected: "75m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, formatElapsed(tt.duration))
		})
	}
}

// TestEntryStatus_String tests status labels.
func TestEntryStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "saved", EntryStatusSaved.String())
	assert.Equal(t, "no lyrics", EntryStatusNoLyrics.String())
	assert.Equal(t, "skipped", EntryStatusSkipped.String())
	assert.Equal(t, "unknown", EntryStatus(42).String())
}
