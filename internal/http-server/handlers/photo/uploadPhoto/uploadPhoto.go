package uploadPhoto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"picstore/internal/ingest"
	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
	"picstore/internal/storage/postgres"
)

// MaxUploadBytes caps a single multipart request body.
const MaxUploadBytes = 500 << 20

type UploadResponse struct {
	response.Response
	Photo models.PhotoView `json:"photo"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PhotoIngester
type PhotoIngester interface {
	Ingest(ctx context.Context, albumID uuid.UUID, up ingest.Upload) (*models.Photo, error)
}

// New uploads a photo into an album. One image per request: the
// derivative pipeline either fully records the photo or fails without
// leaving a partial batch behind.
// @Summary      Uploads a photo into an album
// @Description  Accepts a single image file, generates derivatives and records the photo
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true   "Album ID"
// @Param        photo  formData  file    true   "Image file to upload"
// @Param        price  formData  int     false  "Price in yen"
// @Success      200  {object}  uploadPhoto.UploadResponse
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /albums/{id}/photos/upload [post]
func New(log *slog.Logger, ingester PhotoIngester, maxUploadBytes int64) http.HandlerFunc {
	if maxUploadBytes <= 0 {
		maxUploadBytes = MaxUploadBytes
	}

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.photo.uploadPhoto.New"

		log := log.With(
			slog.String("op", op),
		)

		albumID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid album id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid album id"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		if err = r.ParseMultipartForm(32 << 20); err != nil {
			log.Error("failed to parse multipart form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to parse upload"))
			return
		}

		file, header, err := r.FormFile("photo")
		if err != nil {
			log.Error("no file in request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("no file in request"))
			return
		}
		defer file.Close()

		if header.Size == 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("received empty file"))
			return
		}
		if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
			log.Error("rejected non-image upload", slog.String("filename", header.Filename))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("only image files are accepted"))
			return
		}

		price := 0
		if v := r.FormValue("price"); v != "" {
			price, err = strconv.Atoi(v)
			if err != nil || price < 0 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid price"))
				return
			}
		}

		var dateTaken time.Time
		if v := r.FormValue("date_taken"); v != "" {
			dateTaken, err = time.Parse(time.RFC3339, v)
			if err != nil {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid date_taken, expected RFC3339"))
				return
			}
		}

		photo, err := ingester.Ingest(r.Context(), albumID, ingest.Upload{
			Filename:    header.Filename,
			Content:     file,
			Price:       price,
			DateTaken:   dateTaken,
			Description: r.FormValue("description"),
		})
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				log.Error("album not found", slog.String("album_id", albumID.String()))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("album not found"))
				return
			}

			log.Error("failed to ingest photo", slog.String("filename", header.Filename), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process upload"))
			return
		}

		log.Info("photo uploaded",
			slog.String("album_id", albumID.String()),
			slog.String("photo_id", photo.ID.String()),
		)

		render.JSON(w, r, UploadResponse{
			Response: response.OK(),
			Photo:    photo.View(),
		})
	}
}
