// Package ingest drives the upload pipeline: persist the original,
// produce both derivatives, record the photo, and kick off cover
// generation for an album's first photo.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"picstore/internal/cover"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
)

// DefaultPrice is the standard per-photo price in whole yen, applied
// when the uploader does not declare one.
const DefaultPrice = 1200

type Storage interface {
	GetAlbum(ctx context.Context, id uuid.UUID) (*models.Album, error)
	CountPhotosByAlbum(ctx context.Context, albumID uuid.UUID) (int, error)
	CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	TryMarkCoverRequested(ctx context.Context, id uuid.UUID) (bool, error)
}

type Generator interface {
	Thumbnail(srcPath, dstPath string, size int) error
	Watermark(srcPath, dstPath string) error
}

type CoverPublisher interface {
	SendMessage(ctx context.Context, message []byte) error
}

type Dirs struct {
	Uploads     string
	Thumbnails  string
	Watermarked string
}

type Orchestrator struct {
	log           *slog.Logger
	storage       Storage
	generator     Generator
	publisher     CoverPublisher
	dirs          Dirs
	thumbnailSize int
	defaultPrice  int
	workers       *semaphore.Weighted
}

// New builds an Orchestrator. maxWorkers bounds concurrent
// decode/encode passes so batch uploads of hundreds of files do not
// saturate the host.
func New(log *slog.Logger, storage Storage, generator Generator, publisher CoverPublisher, dirs Dirs, thumbnailSize, defaultPrice int, maxWorkers int64) *Orchestrator {
	if defaultPrice <= 0 {
		defaultPrice = DefaultPrice
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	return &Orchestrator{
		log:           log,
		storage:       storage,
		generator:     generator,
		publisher:     publisher,
		dirs:          dirs,
		thumbnailSize: thumbnailSize,
		defaultPrice:  defaultPrice,
		workers:       semaphore.NewWeighted(maxWorkers),
	}
}

// Upload is one incoming file plus its caller-declared attributes.
type Upload struct {
	Filename    string
	Content     io.Reader
	Price       int       // 0 means the standard price
	DateTaken   time.Time // zero means ingestion time
	Description string
}

var unsafeNameChars = regexp.MustCompile(`[^\w\s.-]`)

// Ingest runs the full pipeline for a single upload. The Photo record
// is created only after both derivatives exist; a generation failure
// aborts with no record written.
func (o *Orchestrator) Ingest(ctx context.Context, albumID uuid.UUID, up Upload) (*models.Photo, error) {
	const op = "ingest.Ingest"

	album, err := o.storage.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Count before this upload lands, for the first-photo check below.
	priorCount, err := o.storage.CountPhotosByAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storedName := fmt.Sprintf("%d-%d-%s",
		time.Now().UnixMilli(),
		rand.IntN(1_000_000_000),
		unsafeNameChars.ReplaceAllString(filepath.Base(up.Filename), ""),
	)

	originalPath := filepath.Join(o.dirs.Uploads, storedName)

	if err = saveOriginal(originalPath, up.Content); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = o.workers.Acquire(ctx, 1); err != nil {
		os.Remove(originalPath)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	thumbnailPath := filepath.Join(o.dirs.Thumbnails, storedName)
	watermarkedPath := filepath.Join(o.dirs.Watermarked, storedName)

	err = o.generator.Thumbnail(originalPath, thumbnailPath, o.thumbnailSize)
	if err == nil {
		err = o.generator.Watermark(originalPath, watermarkedPath)
	}
	o.workers.Release(1)

	if err != nil {
		os.Remove(originalPath)
		os.Remove(thumbnailPath)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	price := up.Price
	if price <= 0 {
		price = o.defaultPrice
	}

	dateTaken := up.DateTaken
	if dateTaken.IsZero() {
		dateTaken = time.Now()
	}

	photo := &models.Photo{
		AlbumID:        albumID,
		Filename:       storedName,
		OriginalURL:    "/uploads/" + storedName,
		ThumbnailURL:   "/uploads/thumbnails/" + storedName,
		WatermarkedURL: "/uploads/watermarked/" + storedName,
		Price:          price,
		Meta: models.PhotoMeta{
			DateTaken:   dateTaken,
			Description: up.Description,
			FilePath:    originalPath,
		},
	}

	created, err := o.storage.CreatePhoto(ctx, photo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if priorCount == 0 && !album.CoverImage.Valid {
		o.triggerCover(ctx, albumID)
	}

	return created, nil
}

// triggerCover publishes the automatic cover job for the album's first
// photo. Any failure here is logged and swallowed: the upload already
// succeeded, and a missed cover is recoverable through the manual
// regeneration path.
func (o *Orchestrator) triggerCover(ctx context.Context, albumID uuid.UUID) {
	// Detach from the request context: the response must not wait on
	// the queue, and a client disconnect must not lose the job.
	ctx = context.WithoutCancel(ctx)

	won, err := o.storage.TryMarkCoverRequested(ctx, albumID)
	if err != nil {
		o.log.Error("failed to mark cover requested", slog.String("album_id", albumID.String()), sl.Err(err))
		return
	}
	if !won {
		return
	}

	message, err := json.Marshal(cover.Job{AlbumID: albumID})
	if err != nil {
		o.log.Error("failed to marshal cover job", slog.String("album_id", albumID.String()), sl.Err(err))
		return
	}

	if err = o.publisher.SendMessage(ctx, message); err != nil {
		o.log.Error("failed to publish cover job", slog.String("album_id", albumID.String()), sl.Err(err))
		return
	}

	o.log.Info("cover job published", slog.String("album_id", albumID.String()))
}

func saveOriginal(path string, content io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	dst, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err = io.Copy(dst, content); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}

	return dst.Close()
}
