package lyrics

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	lyrics_client "github.com/oshokin/lyrics-grabber/internal/client/lyrics"
	"github.com/oshokin/lyrics-grabber/internal/config"
	"github.com/oshokin/lyrics-grabber/internal/logger"
)

// Service packages the lyrics of a Spotify track, album or playlist into a zip archive.
type Service interface {
	// DownloadLyrics resolves the URL, fetches the lyrics of every track and writes the archive.
	// Catalog and authentication failures abort the run before an archive is created.
	DownloadLyrics(ctx context.Context, rawURL string) (*PackagingOutcome, error)
	// PrintSummary prints the final report of a packaging run.
	PrintSummary(ctx context.Context, outcome *PackagingOutcome)
}

// ServiceImpl implements the Service interface.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// catalog resolves entities to metadata and tracks.
	catalog Catalog
	// lyricsClient looks up lyrics per track.
	lyricsClient lyrics_client.Client
	// urlResolver parses catalog links.
	urlResolver URLResolver
}

// normalizedEntry is a catalog entry after normalization.
type normalizedEntry struct {
	position int
	track    *CanonicalTrack
	reason   error
}

// NewService creates a lyrics packaging service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	catalog Catalog,
	lyricsClient lyrics_client.Client,
	urlResolver URLResolver,
) Service {
	return &ServiceImpl{
		cfg:          cfg,
		catalog:      catalog,
		lyricsClient: lyricsClient,
		urlResolver:  urlResolver,
	}
}

// DownloadLyrics resolves the URL, fetches the lyrics of every track and writes the archive.
func (s *ServiceImpl) DownloadLyrics(ctx context.Context, rawURL string) (*PackagingOutcome, error) {
	startTime := time.Now()

	entity, err := s.urlResolver.Resolve(rawURL)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Authenticating with Spotify...")

	if err = s.catalog.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	logger.Info(ctx, "Authentication successful!")

	entity, rawTracks, err := s.resolveEntity(ctx, entity)
	if err != nil {
		return nil, err
	}

	entries := s.normalizeTracks(ctx, rawTracks)

	archiveName := ArchiveName(entity)

	archive, err := NewArchiveWriter(s.cfg.OutputPath, archiveName)
	if err != nil {
		return nil, err
	}

	outcome := &PackagingOutcome{
		Entity:      entity,
		ArchiveName: archiveName,
		ArchivePath: archive.Path(),
		StartTime:   startTime,
		Entries:     make([]EntryResult, 0, len(entries)),
	}

	if err = s.packageEntries(ctx, archive, entries, outcome); err != nil {
		if abortErr := archive.Abort(); abortErr != nil {
			logger.Errorf(ctx, "Failed to discard archive: %v", abortErr)
		}

		return nil, err
	}

	outcome.ArchiveSize, err = archive.Commit()
	if err != nil {
		return nil, err
	}

	outcome.EndTime = time.Now()

	return outcome, nil
}

// resolveEntity fetches the entity metadata and every raw track record in catalog order.
func (s *ServiceImpl) resolveEntity(ctx context.Context, entity *CatalogEntity) (*CatalogEntity, []RawTrack, error) {
	logger.Infof(ctx, "Fetching %s details...", entity.Kind)

	metadata, err := s.catalog.EntityMetadata(ctx, entity)
	if err != nil {
		return nil, nil, err
	}

	entity = entity.WithDisplayName(metadata.Name)

	switch entity.Kind {
	case EntityKindAlbum:
		logger.Infof(ctx, "Album: %s", metadata.Name)
	case EntityKindPlaylist:
		logger.Infof(ctx, "Playlist: %s", metadata.Name)
		logger.Infof(ctx, "Total tracks: %d", metadata.TotalTracks)
	case EntityKindTrack:
		logger.Infof(ctx, "Track: %s", metadata.Name)
	}

	rawTracks, err := collectTracks(s.catalog.ListTracks(ctx, entity))
	if err != nil {
		return nil, nil, err
	}

	logger.Debugf(ctx, "Collected %d track records for %s", len(rawTracks), entity)

	return entity, rawTracks, nil
}

// normalizeTracks converts raw records in catalog order. Rejected records keep their position.
func (s *ServiceImpl) normalizeTracks(ctx context.Context, rawTracks []RawTrack) []normalizedEntry {
	entries := make([]normalizedEntry, 0, len(rawTracks))

	for i, raw := range rawTracks {
		track, err := NormalizeTrack(raw)
		if err != nil {
			logger.Warnf(ctx, "Skipping entry #%d: %v", i+1, err)
		}

		entries = append(entries, normalizedEntry{
			position: i + 1,
			track:    track,
			reason:   err,
		})
	}

	return entries
}

// packageEntries writes one lyric file per track with lyrics, strictly in catalog order.
func (s *ServiceImpl) packageEntries(
	ctx context.Context,
	archive *ArchiveWriter,
	entries []normalizedEntry,
	outcome *PackagingOutcome,
) error {
	var tracksCount int

	for _, entry := range entries {
		if entry.track != nil {
			tracksCount++
		}
	}

	outcome.TotalTracks = tracksCount

	logger.Info(ctx, "")
	logger.Info(ctx, "Starting download process...")

	bar := s.newProgressBar(tracksCount)

	var index int

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		if entry.track == nil {
			outcome.SkippedCount++
			outcome.Entries = append(outcome.Entries, EntryResult{
				Position: entry.position,
				Status:   EntryStatusSkipped,
				Reason:   entry.reason,
			})

			continue
		}

		index++
		s.logTrackProgress(ctx, bar, "[%d/%d] Fetching lyrics for: %s", index, tracksCount, entry.track.Name)

		result, err := s.packageTrack(ctx, archive, entry)
		if err != nil {
			return err
		}

		switch result.Status {
		case EntryStatusSaved:
			outcome.SuccessCount++
		case EntryStatusNoLyrics:
			outcome.NoLyricsCount++
			s.logTrackProgress(ctx, bar, "  -> No lyrics found.")
		case EntryStatusSkipped:
			outcome.SkippedCount++
		}

		outcome.Entries = append(outcome.Entries, *result)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	return nil
}

// packageTrack fetches the lyrics of one track and writes them into the archive.
// Only archive failures are returned as errors.
func (s *ServiceImpl) packageTrack(
	ctx context.Context,
	archive *ArchiveWriter,
	entry normalizedEntry,
) (*EntryResult, error) {
	result := &EntryResult{
		Position: entry.position,
		Track:    entry.track,
	}

	fetched := s.lyricsClient.FetchLyrics(ctx, entry.track.ID)

	lyrics, ok := fetched.Get()
	if !ok {
		// A canceled run is not a missing lyrics file.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.Status = EntryStatusNoLyrics
		result.Reason = fetched.Reason()

		return result, nil
	}

	content, err := BuildLyricFile(entry.track, lyrics)
	if err != nil {
		logger.Warnf(ctx, "Skipping %q: %v", entry.track.Name, err)

		result.Status = EntryStatusSkipped
		result.Reason = err

		return result, nil
	}

	requestedName := EntryName(entry.track)

	entryName, err := archive.AddEntry(requestedName, content)
	if err != nil {
		return nil, err
	}

	if entryName != requestedName {
		logger.Warnf(ctx, "Entry %q already exists, stored as %q", requestedName, entryName)
	}

	result.Status = EntryStatusSaved
	result.EntryName = entryName
	result.Size = len(content)

	return result, nil
}

// newProgressBar returns nil unless progress is enabled and stderr is a terminal.
func (s *ServiceImpl) newProgressBar(total int) *progressbar.ProgressBar {
	if !s.cfg.ShowProgress || total == 0 || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Fetching lyrics"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// logTrackProgress logs per-track lines at Info, or at Debug while a progress bar is drawn.
func (s *ServiceImpl) logTrackProgress(
	ctx context.Context,
	bar *progressbar.ProgressBar,
	format string,
	args ...any,
) {
	if bar != nil {
		logger.Debugf(ctx, format, args...)

		return
	}

	logger.Infof(ctx, format, args...)
}
