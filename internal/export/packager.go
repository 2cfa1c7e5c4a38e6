// Package export turns verified ownership into bytes: a direct stream
// for a single photo, an incrementally built ZIP for an album. Album
// archives tolerate missing member files; one corrupted upload must
// not block a paid download of everything else.
package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"

	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
)

var (
	// ErrFileMissing means the photo record exists but its original is
	// gone from disk. Distinct from an access failure by design.
	ErrFileMissing = errors.New("original file does not exist")
	// ErrNoExportableFiles means the album would produce an empty
	// archive: either no photos, or none of their files resolvable.
	ErrNoExportableFiles = errors.New("album has no exportable files")
)

type Storage interface {
	GetPhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	GetAlbum(ctx context.Context, id uuid.UUID) (*models.Album, error)
	GetPhotosByAlbum(ctx context.Context, albumID uuid.UUID) ([]models.Photo, error)
}

// archiveWriter is the narrow seam over the archive format: open,
// add entries one at a time, finalize. The packager's skip-on-missing
// and stream-not-buffer behavior does not depend on the ZIP details.
type archiveWriter interface {
	Add(name string, src io.Reader) error
	Close() error
}

type zipArchive struct {
	zw *zip.Writer
}

func newZipArchive(w io.Writer) archiveWriter {
	return &zipArchive{zw: zip.NewWriter(w)}
}

func (a *zipArchive) Add(name string, src io.Reader) error {
	entry, err := a.zw.Create(name)
	if err != nil {
		return err
	}

	_, err = io.Copy(entry, src)
	return err
}

func (a *zipArchive) Close() error {
	return a.zw.Close()
}

type Packager struct {
	log        *slog.Logger
	storage    Storage
	uploadsDir string
}

func NewPackager(log *slog.Logger, storage Storage, uploadsDir string) *Packager {
	return &Packager{
		log:        log,
		storage:    storage,
		uploadsDir: uploadsDir,
	}
}

// Download describes one resolvable file ready to be streamed.
type Download struct {
	Path     string
	Filename string
}

// Photo resolves a single photo's original for direct streaming.
func (p *Packager) Photo(ctx context.Context, id uuid.UUID) (*Download, error) {
	const op = "export.Photo"

	photo, err := p.storage.GetPhoto(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	path := resolveOriginal(photo, p.uploadsDir)
	if _, err = os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, ErrFileMissing)
	}

	return &Download{
		Path:     path,
		Filename: photo.Filename,
	}, nil
}

// AlbumExport is a prepared album archive: every member file was
// resolved before any response byte is written, so an album that would
// yield an empty ZIP fails up front instead of mid-stream.
type AlbumExport struct {
	Filename string

	log     *slog.Logger
	entries []archiveEntry
}

type archiveEntry struct {
	path string
	name string
}

var (
	unsafeEntryChars   = regexp.MustCompile(`[^\w\s.-]`)
	unsafeArchiveChars = regexp.MustCompile(`[^\w\s-]`)
)

// PrepareAlbum resolves the album's member files, skipping (and
// logging) any missing from disk. Returns ErrNoExportableFiles when
// nothing remains.
func (p *Packager) PrepareAlbum(ctx context.Context, id uuid.UUID) (*AlbumExport, error) {
	const op = "export.PrepareAlbum"

	album, err := p.storage.GetAlbum(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photos, err := p.storage.GetPhotosByAlbum(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries := make([]archiveEntry, 0, len(photos))
	for _, photo := range photos {
		path := resolveOriginal(&photo, p.uploadsDir)

		if _, err = os.Stat(path); err != nil {
			p.log.Warn("album member missing, skipping",
				slog.String("album_id", id.String()),
				slog.String("photo_id", photo.ID.String()),
				slog.String("path", path),
			)
			continue
		}

		entries = append(entries, archiveEntry{
			path: path,
			name: unsafeEntryChars.ReplaceAllString(photo.Filename, ""),
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: album %s: %w", op, id, ErrNoExportableFiles)
	}

	name := unsafeArchiveChars.ReplaceAllString(album.Name, "")
	if name == "" {
		name = "album"
	}

	return &AlbumExport{
		Filename: name + ".zip",
		log:      p.log,
		entries:  entries,
	}, nil
}

// Stream writes the archive to w entry by entry. Files that vanished
// since preparation are skipped. A cancelled context stops the walk so
// a disconnected client does not keep the packager reading originals.
func (e *AlbumExport) Stream(ctx context.Context, w io.Writer) error {
	const op = "export.Stream"

	archive := newZipArchive(w)

	for _, entry := range e.entries {
		select {
		case <-ctx.Done():
			archive.Close()
			return fmt.Errorf("%s: %w", op, ctx.Err())
		default:
		}

		src, err := os.Open(entry.path)
		if err != nil {
			e.log.Warn("album member vanished mid-export, skipping",
				slog.String("path", entry.path),
				sl.Err(err),
			)
			continue
		}

		err = archive.Add(entry.name, src)
		src.Close()
		if err != nil {
			archive.Close()
			return fmt.Errorf("%s: add %s: %w", op, entry.name, err)
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// resolveOriginal prefers the on-disk path recorded at ingestion time
// and falls back to reconstructing it from the public URL.
func resolveOriginal(photo *models.Photo, uploadsDir string) string {
	if photo.Meta.FilePath != "" {
		return photo.Meta.FilePath
	}

	return filepath.Join(uploadsDir, filepath.Base(photo.OriginalURL))
}
