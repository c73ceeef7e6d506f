package lyrics

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oshokin/lyrics-grabber/internal/logger"
)

const (
	// summaryRule frames the final result line.
	summaryRule = "----------------------------------------"
	// statisticsRule frames the statistics block.
	statisticsRule = "═══════════════════════════════════════════════════════════════"
)

// formatElapsed formats a duration into a human-readable string.
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// PrintSummary prints the final report of a packaging run.
func (s *ServiceImpl) PrintSummary(ctx context.Context, outcome *PackagingOutcome) {
	if outcome == nil {
		return
	}

	logger.Info(ctx, "")
	logger.Info(ctx, summaryRule)

	if outcome.HasLyrics() {
		logger.Infof(ctx, "Success! Created %s with %d lyric file(s).", outcome.ArchiveName, outcome.SuccessCount)
	} else {
		logger.Info(ctx, "Completed. No lyrics were found for any of the tracks.")
	}

	logger.Info(ctx, summaryRule)

	s.printStatistics(ctx, outcome)

	if s.cfg.ShowSummaryTable && len(outcome.Entries) > 0 {
		logger.Info(ctx, "")
		logger.Info(ctx, renderEntriesTable(outcome.Entries))
	}
}

// printStatistics prints the counters of the run.
func (s *ServiceImpl) printStatistics(ctx context.Context, outcome *PackagingOutcome) {
	logger.Info(ctx, "")
	logger.Info(ctx, statisticsRule)
	logger.Infof(ctx, "Source:           %s", outcome.Entity)
	logger.Infof(ctx, "Tracks:           %d total", outcome.TotalTracks)
	logger.Infof(ctx, "  With Lyrics:    %d", outcome.SuccessCount)

	if outcome.NoLyricsCount > 0 {
		logger.Infof(ctx, "  No Lyrics:      %d", outcome.NoLyricsCount)
	}

	if outcome.SkippedCount > 0 {
		logger.Infof(ctx, "  Skipped:        %d", outcome.SkippedCount)
	}

	if outcome.ArchiveSize > 0 {
		//nolint:gosec // ArchiveSize is positive here.
		logger.Infof(ctx, "Archive:          %s (%s)", outcome.ArchivePath, humanize.Bytes(uint64(outcome.ArchiveSize)))
	}

	if !outcome.StartTime.IsZero() && !outcome.EndTime.IsZero() {
		logger.Infof(ctx, "Duration:         %s", formatElapsed(outcome.EndTime.Sub(outcome.StartTime)))
	}

	logger.Info(ctx, statisticsRule)
}

// renderEntriesTable renders the per-entry results as a table.
func renderEntriesTable(entries []EntryResult) string {
	writer := table.NewWriter()
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"#", "Track", "Artists", "Status", "Details"})

	for i := range entries {
		entry := &entries[i]

		var trackName, artists string
		if entry.Track != nil {
			trackName = entry.Track.Name
			artists = entry.Track.Artists
		}

		writer.AppendRow(table.Row{
			strconv.Itoa(entry.Position),
			trackName,
			artists,
			entry.Status.String(),
			entryDetails(entry),
		})
	}

	return writer.Render()
}

// entryDetails returns the entry name for saved entries and the reason otherwise.
func entryDetails(entry *EntryResult) string {
	if entry.Status == EntryStatusSaved {
		return entry.EntryName + " (" + humanize.Bytes(uint64(entry.Size)) + ")" //nolint:gosec // Size is never negative.
	}

	if entry.Reason == nil {
		return ""
	}

	// Wrapped reasons repeat the track name, keep the first line short.
	reason, _, _ := strings.Cut(entry.Reason.Error(), "\n")

	return reason
}
