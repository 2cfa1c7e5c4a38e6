package listPhotos

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"picstore/internal/http-server/middleware/auth"
	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
	"picstore/internal/storage/postgres"
)

type PhotosResponse struct {
	response.Response
	Photos []models.PhotoView `json:"photos"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AlbumPhotosProvider
type AlbumPhotosProvider interface {
	GetAlbum(ctx context.Context, id uuid.UUID) (*models.Album, error)
	GetPhotosByAlbum(ctx context.Context, albumID uuid.UUID) ([]models.Photo, error)
}

// New lists an album's photos in upload order.
// @Summary      List album photos
// @Description  Returns the album's photos, oldest first. Unpublished albums are visible to admins only
// @Tags         photos
// @Produce      json
// @Param        id  path  string  true  "Album ID"
// @Success      200  {object}  listPhotos.PhotosResponse
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /albums/{id}/photos [get]
func New(log *slog.Logger, provider AlbumPhotosProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.photo.listPhotos.New"

		log := log.With(
			slog.String("op", op),
		)

		albumID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid album id"))
			return
		}

		album, err := provider.GetAlbum(r.Context(), albumID)
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("album not found"))
				return
			}

			log.Error("failed to get album", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get album"))
			return
		}

		// An unpublished album does not exist for non-admin callers.
		if !album.IsPublished {
			user, ok := auth.FromContext(r.Context())
			if !ok || !user.IsAdmin {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("album not found"))
				return
			}
		}

		photos, err := provider.GetPhotosByAlbum(r.Context(), albumID)
		if err != nil {
			log.Error("failed to list photos", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list photos"))
			return
		}

		views := make([]models.PhotoView, 0, len(photos))
		for i := range photos {
			views = append(views, photos[i].View())
		}

		render.JSON(w, r, PhotosResponse{
			Response: response.OK(),
			Photos:   views,
		})
	}
}
