package publishAlbum

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/storage/postgres"
)

type Request struct {
	Published bool `json:"published"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AlbumPublisher
type AlbumPublisher interface {
	SetAlbumPublished(ctx context.Context, id uuid.UUID, published bool) error
}

// New toggles an album's published state. An empty body publishes.
// @Summary      Publish or unpublish an album
// @Tags         albums
// @Accept       json
// @Produce      json
// @Param        id     path  string                 true   "Album ID"
// @Param        input  body  publishAlbum.Request   false  "Desired state, defaults to published"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /albums/{id}/publish [patch]
func New(log *slog.Logger, publisher AlbumPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.album.publishAlbum.New"

		log := log.With(
			slog.String("op", op),
		)

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid album id"))
			return
		}

		req := Request{Published: true}

		err = render.DecodeJSON(r.Body, &req)
		if err != nil && !errors.Is(err, io.EOF) {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = publisher.SetAlbumPublished(r.Context(), id, req.Published); err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("album not found"))
				return
			}

			log.Error("failed to update album", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update album"))
			return
		}

		log.Info("album publish state changed",
			slog.String("album_id", id.String()),
			slog.Bool("published", req.Published),
		)

		render.JSON(w, r, response.OK())
	}
}
