package getPhoto

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

type PhotoResponse struct {
	response.Response
	Photo models.PhotoView `json:"photo"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PhotoProvider
type PhotoProvider interface {
	GetPhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	GetAlbum(ctx context.Context, id uuid.UUID) (*models.Album, error)
}

// New returns a single photo's public view. Photos inherit their
// album's visibility: while the album is unpublished, non-admin
// callers get a 404.
// @Summary      Get a photo
// @Description  Returns the photo's watermarked and thumbnail URLs and attributes
// @Tags         photos
// @Produce      json
// @Param        id  path  string  true  "Photo ID"
// @Success      200  {object}  getPhoto.PhotoResponse
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /photos/{id} [get]
func New(log *slog.Logger, provider PhotoProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.photo.getPhoto.New"

		log := log.With(
			slog.String("op", op),
		)

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid photo id"))
			return
		}

		photo, err := provider.GetPhoto(r.Context(), id)
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("photo not found"))
				return
			}

			log.Error("failed to get photo", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get photo"))
			return
		}

		album, err := provider.GetAlbum(r.Context(), photo.AlbumID)
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("photo not found"))
				return
			}

			log.Error("failed to get album", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get photo"))
			return
		}

		// A photo of an unpublished album does not exist for non-admin
		// callers.
		if !album.IsPublished {
			user, ok := auth.FromContext(r.Context())
			if !ok || !user.IsAdmin {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("photo not found"))
				return
			}
		}

		render.JSON(w, r, PhotoResponse{
			Response: response.OK(),
			Photo:    photo.View(),
		})
	}
}
