package generateCover

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"picstore/internal/cover"
	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/storage/postgres"
)

type CoverResponse struct {
	response.Response
	CoverImage string `json:"cover_image"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CoverGenerator
type CoverGenerator interface {
	Generate(ctx context.Context, albumID uuid.UUID) (string, error)
}

// New regenerates an album's cover synchronously. The automatic path
// runs through the queue on first upload; this endpoint exists for
// recovery and for changing the cover after photos were reordered
// or deleted.
// @Summary      Regenerate album cover
// @Tags         albums
// @Produce      json
// @Param        id  path  string  true  "Album ID"
// @Success      200  {object}  generateCover.CoverResponse
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /albums/{id}/cover [post]
func New(log *slog.Logger, generator CoverGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.album.generateCover.New"

		log := log.With(
			slog.String("op", op),
		)

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid album id"))
			return
		}

		coverURL, err := generator.Generate(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, postgres.ErrNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("album not found"))
			case errors.Is(err, cover.ErrNoPhotos):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("album has no photos"))
			default:
				log.Error("failed to generate cover", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to generate cover"))
			}
			return
		}

		log.Info("cover regenerated",
			slog.String("album_id", id.String()),
			slog.String("cover", coverURL),
		)

		render.JSON(w, r, CoverResponse{
			Response:   response.OK(),
			CoverImage: coverURL,
		})
	}
}
