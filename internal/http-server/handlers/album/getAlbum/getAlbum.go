package getAlbum

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

type AlbumResponse struct {
	response.Response
	Album models.AlbumView `json:"album"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AlbumProvider
type AlbumProvider interface {
	GetAlbum(ctx context.Context, id uuid.UUID) (*models.Album, error)
	CountPhotosByAlbum(ctx context.Context, albumID uuid.UUID) (int, error)
}

// New returns a single album. Unpublished albums are visible to admins only.
// @Summary      Get an album
// @Tags         albums
// @Produce      json
// @Param        id  path  string  true  "Album ID"
// @Success      200  {object}  getAlbum.AlbumResponse
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /albums/{id} [get]
func New(log *slog.Logger, provider AlbumProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.album.getAlbum.New"

		log := log.With(
			slog.String("op", op),
		)

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid album id"))
			return
		}

		album, err := provider.GetAlbum(r.Context(), id)
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

		if !album.IsPublished {
			user, ok := auth.FromContext(r.Context())
			if !ok || !user.IsAdmin {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("album not found"))
				return
			}
		}

		count, err := provider.CountPhotosByAlbum(r.Context(), id)
		if err != nil {
			log.Error("failed to count photos", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get album"))
			return
		}

		render.JSON(w, r, AlbumResponse{
			Response: response.OK(),
			Album:    album.View(count),
		})
	}
}
