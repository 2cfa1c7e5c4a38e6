// Package cover picks an album's canonical cover source and produces
// the cover derivative. Selection is first-uploaded-wins: simple,
// deterministic, and recoverable through the manual regeneration
// endpoint if anything goes wrong.
package cover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
)

// DefaultCoverSize exceeds the thumbnail size; covers are generated
// from the original, never from an existing derivative.
const DefaultCoverSize = 600

var (
	// ErrNoPhotos means the album is empty and cover generation is a no-op.
	ErrNoPhotos = errors.New("album has no photos")
	// ErrSourceMissing means the selected photo's original is gone from disk.
	ErrSourceMissing = errors.New("cover source file does not exist")
)

// Job is the queue message requesting cover generation for one album.
type Job struct {
	AlbumID uuid.UUID `json:"album_id"`
}

type Storage interface {
	GetPhotosByAlbum(ctx context.Context, albumID uuid.UUID) ([]models.Photo, error)
	UpdateAlbumCover(ctx context.Context, id uuid.UUID, coverImage string) error
}

type Generator interface {
	Thumbnail(srcPath, dstPath string, size int) error
}

type Selector struct {
	log           *slog.Logger
	storage       Storage
	generator     Generator
	uploadsDir    string
	thumbnailsDir string
	coverSize     int
}

func NewSelector(log *slog.Logger, storage Storage, generator Generator, uploadsDir, thumbnailsDir string, coverSize int) *Selector {
	if coverSize <= 0 {
		coverSize = DefaultCoverSize
	}

	return &Selector{
		log:           log,
		storage:       storage,
		generator:     generator,
		uploadsDir:    uploadsDir,
		thumbnailsDir: thumbnailsDir,
		coverSize:     coverSize,
	}
}

// Generate selects the earliest-uploaded photo of the album, renders a
// cover-sized derivative from its original and persists the new cover
// URL. Returns the URL, or ErrNoPhotos for an empty album.
func (s *Selector) Generate(ctx context.Context, albumID uuid.UUID) (string, error) {
	const op = "cover.Generate"

	photos, err := s.storage.GetPhotosByAlbum(ctx, albumID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(photos) == 0 {
		return "", fmt.Errorf("%s: album %s: %w", op, albumID, ErrNoPhotos)
	}

	// Storage returns photos ordered by creation time ascending, so
	// the first entry is the first upload.
	source := photos[0]

	srcPath := source.Meta.FilePath
	if srcPath == "" {
		srcPath = filepath.Join(s.uploadsDir, filepath.Base(source.OriginalURL))
	}

	if _, err = os.Stat(srcPath); err != nil {
		return "", fmt.Errorf("%s: %s: %w", op, srcPath, ErrSourceMissing)
	}

	coverFilename := fmt.Sprintf("album_%s_cover_%s.jpg", albumID, uuid.New())
	coverPath := filepath.Join(s.thumbnailsDir, coverFilename)

	if err = s.generator.Thumbnail(srcPath, coverPath, s.coverSize); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	coverURL := "/uploads/thumbnails/" + coverFilename

	if err = s.storage.UpdateAlbumCover(ctx, albumID, coverURL); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("album cover generated",
		slog.String("album_id", albumID.String()),
		slog.String("cover", coverURL),
		slog.String("source_photo", source.ID.String()),
	)

	return coverURL, nil
}

// ProcessMessage is the kafka consumer entry point.
func (s *Selector) ProcessMessage(ctx context.Context, message []byte) error {
	const op = "cover.ProcessMessage"

	var job Job
	if err := json.Unmarshal(message, &job); err != nil {
		s.log.Error("failed to unmarshal cover job", slog.String("op", op), sl.Err(err))
		return err
	}

	if _, err := s.Generate(ctx, job.AlbumID); err != nil {
		s.log.Error("cover generation failed",
			slog.String("op", op),
			slog.String("album_id", job.AlbumID.String()),
			sl.Err(err),
		)
		return err
	}

	return nil
}
