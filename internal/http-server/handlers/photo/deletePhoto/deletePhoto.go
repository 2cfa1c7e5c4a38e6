package deletePhoto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
	"picstore/internal/storage/postgres"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PhotoRemover
type PhotoRemover interface {
	GetPhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

// New deletes a photo and its files.
// @Summary      Delete a photo
// @Description  Removes the photo record along with its original, thumbnail and watermarked files
// @Tags         photos
// @Produce      json
// @Param        id  path  string  true  "Photo ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /photos/{id} [delete]
func New(log *slog.Logger, remover PhotoRemover, uploadsDir, thumbnailsDir, watermarkedDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.photo.deletePhoto.New"

		log := log.With(
			slog.String("op", op),
		)

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid photo id"))
			return
		}

		photo, err := remover.GetPhoto(r.Context(), id)
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("photo not found"))
				return
			}

			log.Error("failed to get photo", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete photo"))
			return
		}

		// The record goes first; orphaned files are harmless, a record
		// pointing at deleted files is not.
		if err = remover.DeletePhoto(r.Context(), id); err != nil {
			log.Error("failed to delete photo record", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete photo"))
			return
		}

		originalPath := photo.Meta.FilePath
		if originalPath == "" {
			originalPath = filepath.Join(uploadsDir, photo.Filename)
		}

		for _, path := range []string{
			originalPath,
			filepath.Join(thumbnailsDir, photo.Filename),
			filepath.Join(watermarkedDir, photo.Filename),
		} {
			if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Warn("failed to remove file", slog.String("path", path), sl.Err(err))
			}
		}

		log.Info("photo deleted", slog.String("photo_id", id.String()))

		render.JSON(w, r, response.OK())
	}
}
