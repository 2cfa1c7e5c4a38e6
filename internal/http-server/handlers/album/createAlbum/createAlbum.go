package createAlbum

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
)

type Request struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Price       int       `json:"price" validate:"gte=0"`
}

type AlbumResponse struct {
	response.Response
	Album models.AlbumView `json:"album"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AlbumCreator
type AlbumCreator interface {
	CreateAlbum(ctx context.Context, album *models.Album) (*models.Album, error)
}

// New creates an album. Albums start unpublished.
// @Summary      Create an album
// @Description  Creates an unpublished album in a category
// @Tags         albums
// @Accept       json
// @Produce      json
// @Param        input  body  createAlbum.Request  true  "Album attributes"
// @Success      200  {object}  createAlbum.AlbumResponse
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /albums [post]
func New(log *slog.Logger, creator AlbumCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.album.createAlbum.New"

		log := log.With(
			slog.String("op", op),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request"))
			return
		}
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErrs validator.ValidationErrors
			errors.As(err, &validateErrs)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}

		album, err := creator.CreateAlbum(r.Context(), &models.Album{
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
		})
		if err != nil {
			log.Error("failed to create album", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create album"))
			return
		}

		log.Info("album created", slog.String("album_id", album.ID.String()))

		render.JSON(w, r, AlbumResponse{
			Response: response.OK(),
			Album:    album.View(0),
		})
	}
}
