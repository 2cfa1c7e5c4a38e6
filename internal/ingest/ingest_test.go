package ingest_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"picstore/internal/cover"
	"picstore/internal/ingest"
	"picstore/internal/models"
)

type fakeStorage struct {
	album      *models.Album
	albumErr   error
	priorCount int

	created    *models.Photo
	createErr  error
	markedWon  bool
	markCalled bool
}

func (f *fakeStorage) GetAlbum(_ context.Context, _ uuid.UUID) (*models.Album, error) {
	return f.album, f.albumErr
}

func (f *fakeStorage) CountPhotosByAlbum(_ context.Context, _ uuid.UUID) (int, error) {
	return f.priorCount, nil
}

func (f *fakeStorage) CreatePhoto(_ context.Context, photo *models.Photo) (*models.Photo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *photo
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeStorage) TryMarkCoverRequested(_ context.Context, _ uuid.UUID) (bool, error) {
	f.markCalled = true
	return f.markedWon, nil
}

type fakeGenerator struct {
	thumbErr error
	markErr  error

	thumbDst string
	markDst  string
}

func (f *fakeGenerator) Thumbnail(_, dstPath string, _ int) error {
	f.thumbDst = dstPath
	return f.thumbErr
}

func (f *fakeGenerator) Watermark(_, dstPath string) error {
	f.markDst = dstPath
	return f.markErr
}

type fakePublisher struct {
	messages [][]byte
	err      error
}

func (f *fakePublisher) SendMessage(_ context.Context, message []byte) error {
	f.messages = append(f.messages, message)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))
}

func newOrchestrator(t *testing.T, storage *fakeStorage, gen *fakeGenerator, pub *fakePublisher) *ingest.Orchestrator {
	t.Helper()

	tmpDir := t.TempDir()
	dirs := ingest.Dirs{
		Uploads:     filepath.Join(tmpDir, "uploads"),
		Thumbnails:  filepath.Join(tmpDir, "uploads", "thumbnails"),
		Watermarked: filepath.Join(tmpDir, "uploads", "watermarked"),
	}

	return ingest.New(discardLogger(), storage, gen, pub, dirs, 400, 1200, 2)
}

func TestIngestHappyPath(t *testing.T) {
	storage := &fakeStorage{
		album:     &models.Album{ID: uuid.New()},
		markedWon: true,
	}
	gen := &fakeGenerator{}
	pub := &fakePublisher{}

	o := newOrchestrator(t, storage, gen, pub)

	photo, err := o.Ingest(context.Background(), storage.album.ID, ingest.Upload{
		Filename: "shot 001.jpg",
		Content:  strings.NewReader("image bytes"),
	})
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, photo.ID)
	require.Equal(t, 1200, photo.Price, "omitted price falls back to the standard price")
	require.True(t, strings.HasPrefix(photo.OriginalURL, "/uploads/"))
	require.True(t, strings.HasPrefix(photo.ThumbnailURL, "/uploads/thumbnails/"))
	require.True(t, strings.HasPrefix(photo.WatermarkedURL, "/uploads/watermarked/"))
	require.NotEmpty(t, photo.Meta.FilePath)
	require.False(t, photo.Meta.DateTaken.IsZero())

	// Original persisted on disk under the generated name.
	content, err := os.ReadFile(photo.Meta.FilePath)
	require.NoError(t, err)
	require.Equal(t, "image bytes", string(content))

	// First photo of an uncovered album publishes exactly one cover job.
	require.True(t, storage.markCalled)
	require.Len(t, pub.messages, 1)

	var job cover.Job
	require.NoError(t, json.Unmarshal(pub.messages[0], &job))
	require.Equal(t, storage.album.ID, job.AlbumID)
}

func TestIngestDeclaredAttributes(t *testing.T) {
	storage := &fakeStorage{album: &models.Album{ID: uuid.New()}, priorCount: 3}
	o := newOrchestrator(t, storage, &fakeGenerator{}, &fakePublisher{})

	taken := time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC)

	photo, err := o.Ingest(context.Background(), storage.album.ID, ingest.Upload{
		Filename:    "finals.jpg",
		Content:     strings.NewReader("image bytes"),
		Price:       2500,
		DateTaken:   taken,
		Description: "100m finals",
	})
	require.NoError(t, err)

	require.Equal(t, 2500, photo.Price)
	require.Equal(t, taken, photo.Meta.DateTaken)
	require.Equal(t, "100m finals", photo.Meta.Description)
}

func TestIngestUnknownAlbum(t *testing.T) {
	notFound := errors.New("album not found")
	storage := &fakeStorage{albumErr: notFound}
	o := newOrchestrator(t, storage, &fakeGenerator{}, &fakePublisher{})

	_, err := o.Ingest(context.Background(), uuid.New(), ingest.Upload{
		Filename: "x.jpg",
		Content:  strings.NewReader("image bytes"),
	})
	require.ErrorIs(t, err, notFound)
	require.Nil(t, storage.created)
}

func TestIngestDerivativeFailureCreatesNoRecord(t *testing.T) {
	storage := &fakeStorage{album: &models.Album{ID: uuid.New()}}
	gen := &fakeGenerator{markErr: errors.New("corrupt image")}
	pub := &fakePublisher{}

	o := newOrchestrator(t, storage, gen, pub)

	_, err := o.Ingest(context.Background(), storage.album.ID, ingest.Upload{
		Filename: "broken.jpg",
		Content:  strings.NewReader("not really an image"),
	})
	require.Error(t, err)
	require.Nil(t, storage.created, "no photo record after a generation failure")
	require.Empty(t, pub.messages, "no cover job after a failed ingestion")
}

func TestIngestNoCoverJobWhenAlbumHasPhotos(t *testing.T) {
	storage := &fakeStorage{album: &models.Album{ID: uuid.New()}, priorCount: 2, markedWon: true}
	pub := &fakePublisher{}

	o := newOrchestrator(t, storage, &fakeGenerator{}, pub)

	_, err := o.Ingest(context.Background(), storage.album.ID, ingest.Upload{
		Filename: "next.jpg",
		Content:  strings.NewReader("image bytes"),
	})
	require.NoError(t, err)
	require.False(t, storage.markCalled)
	require.Empty(t, pub.messages)
}

func TestIngestNoCoverJobWhenCoverExists(t *testing.T) {
	storage := &fakeStorage{
		album: &models.Album{
			ID:         uuid.New(),
			CoverImage: sql.NullString{String: "/uploads/thumbnails/cover.jpg", Valid: true},
		},
		markedWon: true,
	}
	pub := &fakePublisher{}

	o := newOrchestrator(t, storage, &fakeGenerator{}, pub)

	_, err := o.Ingest(context.Background(), storage.album.ID, ingest.Upload{
		Filename: "first.jpg",
		Content:  strings.NewReader("image bytes"),
	})
	require.NoError(t, err)
	require.False(t, storage.markCalled)
	require.Empty(t, pub.messages)
}

func TestIngestCoverRaceLoserStaysQuiet(t *testing.T) {
	// Another concurrent upload already claimed the cover flag.
	storage := &fakeStorage{album: &models.Album{ID: uuid.New()}, markedWon: false}
	pub := &fakePublisher{}

	o := newOrchestrator(t, storage, &fakeGenerator{}, pub)

	_, err := o.Ingest(context.Background(), storage.album.ID, ingest.Upload{
		Filename: "racer.jpg",
		Content:  strings.NewReader("image bytes"),
	})
	require.NoError(t, err)
	require.True(t, storage.markCalled)
	require.Empty(t, pub.messages)
}

func TestIngestPublishFailureDoesNotFailUpload(t *testing.T) {
	storage := &fakeStorage{album: &models.Album{ID: uuid.New()}, markedWon: true}
	pub := &fakePublisher{err: errors.New("broker down")}

	o := newOrchestrator(t, storage, &fakeGenerator{}, pub)

	photo, err := o.Ingest(context.Background(), storage.album.ID, ingest.Upload{
		Filename: "first.jpg",
		Content:  strings.NewReader("image bytes"),
	})
	require.NoError(t, err, "cover publish failure must not fail the upload")
	require.NotNil(t, photo)
}

func TestIngestSanitizesFilename(t *testing.T) {
	storage := &fakeStorage{album: &models.Album{ID: uuid.New()}, priorCount: 1}
	o := newOrchestrator(t, storage, &fakeGenerator{}, &fakePublisher{})

	photo, err := o.Ingest(context.Background(), storage.album.ID, ingest.Upload{
		Filename: `../evil/"shot"#1?.jpg`,
		Content:  strings.NewReader("image bytes"),
	})
	require.NoError(t, err)

	require.NotContains(t, photo.Filename, "/")
	require.NotContains(t, photo.Filename, `"`)
	require.NotContains(t, photo.Filename, "#")
	require.NotContains(t, photo.Filename, "?")
	require.True(t, strings.HasSuffix(photo.Filename, ".jpg"))
}
