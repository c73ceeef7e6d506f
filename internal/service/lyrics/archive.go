package lyrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"

	"github.com/oshokin/lyrics-grabber/internal/constants"
)

// createNewFileOptions fails if the file already exists.
const createNewFileOptions = os.O_CREATE | os.O_EXCL | os.O_WRONLY

// ArchiveWriter builds a zip archive in a temporary .part file next to its final path.
// The archive appears under its final name only after Commit.
type ArchiveWriter struct {
	// path is the final archive path.
	path string
	// partPath is the temporary file the archive is written to.
	partPath string
	// file is the open temporary file.
	file *os.File
	// writer is the zip stream over file.
	writer *zip.Writer
	// names holds the entry names already written.
	names map[string]struct{}
	// closed is set once the archive was committed or aborted.
	closed bool
}

// NewArchiveWriter creates the output directory and opens a temporary file for the archive.
func NewArchiveWriter(outputDir, archiveName string) (*ArchiveWriter, error) {
	if err := os.MkdirAll(outputDir, constants.DefaultFolderPermissions); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, archiveName)
	partPath := path + "." + uuid.New().String() + constants.ExtensionPart

	file, err := os.OpenFile(filepath.Clean(partPath), createNewFileOptions, constants.DefaultFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary archive: %w", err)
	}

	return &ArchiveWriter{
		path:     path,
		partPath: partPath,
		file:     file,
		writer:   zip.NewWriter(file),
		names:    make(map[string]struct{}),
	}, nil
}

// Path returns the final archive path.
func (a *ArchiveWriter) Path() string {
	return a.path
}

// AddEntry writes a file into the archive and returns the name it was stored under.
// A name that is already taken gets a numeric suffix, e.g. "01. Song (2).lrc".
func (a *ArchiveWriter) AddEntry(name string, content []byte) (string, error) {
	if a.closed {
		return "", ErrArchiveClosed
	}

	name = a.uniqueName(name)

	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}

	entry, err := a.writer.CreateHeader(header)
	if err != nil {
		return "", fmt.Errorf("failed to create archive entry %q: %w", name, err)
	}

	if _, err = entry.Write(content); err != nil {
		return "", fmt.Errorf("failed to write archive entry %q: %w", name, err)
	}

	a.names[name] = struct{}{}

	return name, nil
}

// Commit finalizes the archive, moves it to its final path and returns its size.
// The temporary file is removed on failure.
func (a *ArchiveWriter) Commit() (int64, error) {
	if a.closed {
		return 0, ErrArchiveClosed
	}

	a.closed = true

	if err := a.finish(); err != nil {
		_ = os.Remove(a.partPath)

		return 0, err
	}

	info, err := os.Stat(a.partPath)
	if err != nil {
		_ = os.Remove(a.partPath)

		return 0, fmt.Errorf("failed to stat temporary archive: %w", err)
	}

	if err = os.Rename(a.partPath, a.path); err != nil {
		_ = os.Remove(a.partPath)

		return 0, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return info.Size(), nil
}

// Abort discards the archive. It is a no-op after Commit.
func (a *ArchiveWriter) Abort() error {
	if a.closed {
		return nil
	}

	a.closed = true

	// The content is discarded, close errors do not matter.
	_ = a.writer.Close()
	_ = a.file.Close()

	if err := os.Remove(a.partPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove temporary archive: %w", err)
	}

	return nil
}

func (a *ArchiveWriter) finish() error {
	if err := a.writer.Close(); err != nil {
		_ = a.file.Close()

		return fmt.Errorf("failed to close archive: %w", err)
	}

	if err := a.file.Sync(); err != nil {
		_ = a.file.Close()

		return fmt.Errorf("failed to sync archive: %w", err)
	}

	if err := a.file.Close(); err != nil {
		return fmt.Errorf("failed to close temporary archive: %w", err)
	}

	return nil
}

func (a *ArchiveWriter) uniqueName(name string) string {
	if _, taken := a.names[name]; !taken {
		return name
	}

	extension := filepath.Ext(name)
	base := strings.TrimSuffix(name, extension)

	for i := 2; ; i++ {
		candidate := base + " (" + strconv.Itoa(i) + ")" + extension
		if _, taken := a.names[candidate]; !taken {
			return candidate
		}
	}
}
