package deletePhoto_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"picstore/internal/http-server/handlers/photo/deletePhoto"
	removerMocks "picstore/internal/http-server/handlers/photo/deletePhoto/mocks"
	"picstore/internal/models"
	"picstore/internal/storage/postgres"
)

func TestDeletePhoto(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	tmpDir := t.TempDir()
	uploadsDir := filepath.Join(tmpDir, "uploads")
	thumbnailsDir := filepath.Join(uploadsDir, "thumbnails")
	watermarkedDir := filepath.Join(uploadsDir, "watermarked")
	for _, dir := range []string{uploadsDir, thumbnailsDir, watermarkedDir} {
		require.NoError(t, os.MkdirAll(dir, os.ModePerm))
	}

	const storedName = "171234-5678-shot.jpg"

	writeAll := func(t *testing.T) {
		t.Helper()
		for _, dir := range []string{uploadsDir, thumbnailsDir, watermarkedDir} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, storedName), []byte("x"), 0o644))
		}
	}

	photoID := uuid.New()
	photo := &models.Photo{
		ID:       photoID,
		Filename: storedName,
		Meta:     models.PhotoMeta{FilePath: filepath.Join(uploadsDir, storedName)},
	}

	t.Run("Success Removes Record And Files", func(t *testing.T) {
		writeAll(t)

		removerMock := removerMocks.NewPhotoRemover(t)
		removerMock.On("GetPhoto", mock.Anything, photoID).Return(photo, nil).Once()
		removerMock.On("DeletePhoto", mock.Anything, photoID).Return(nil).Once()

		rr := doDelete(t, log, removerMock, photoID.String(), uploadsDir, thumbnailsDir, watermarkedDir)
		require.Equal(t, http.StatusOK, rr.Code)

		for _, dir := range []string{uploadsDir, thumbnailsDir, watermarkedDir} {
			_, err := os.Stat(filepath.Join(dir, storedName))
			require.True(t, os.IsNotExist(err), "file in %s should be gone", dir)
		}
	})

	t.Run("Missing Files Tolerated", func(t *testing.T) {
		removerMock := removerMocks.NewPhotoRemover(t)
		removerMock.On("GetPhoto", mock.Anything, photoID).Return(photo, nil).Once()
		removerMock.On("DeletePhoto", mock.Anything, photoID).Return(nil).Once()

		rr := doDelete(t, log, removerMock, photoID.String(), uploadsDir, thumbnailsDir, watermarkedDir)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		removerMock := removerMocks.NewPhotoRemover(t)
		removerMock.On("GetPhoto", mock.Anything, photoID).Return(nil, postgres.ErrNotFound).Once()

		rr := doDelete(t, log, removerMock, photoID.String(), uploadsDir, thumbnailsDir, watermarkedDir)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Record Delete Fails Keeps Files", func(t *testing.T) {
		writeAll(t)

		removerMock := removerMocks.NewPhotoRemover(t)
		removerMock.On("GetPhoto", mock.Anything, photoID).Return(photo, nil).Once()
		removerMock.On("DeletePhoto", mock.Anything, photoID).Return(context.DeadlineExceeded).Once()

		rr := doDelete(t, log, removerMock, photoID.String(), uploadsDir, thumbnailsDir, watermarkedDir)
		require.Equal(t, http.StatusInternalServerError, rr.Code)

		_, err := os.Stat(filepath.Join(uploadsDir, storedName))
		require.NoError(t, err, "original must survive a failed record delete")
	})
}

func doDelete(t *testing.T, log *slog.Logger, remover deletePhoto.PhotoRemover, id, uploads, thumbs, marked string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodDelete, "/photos/"+id, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	deletePhoto.New(log, remover, uploads, thumbs, marked).ServeHTTP(rr, req)

	return rr
}
