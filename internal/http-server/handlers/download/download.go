package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"picstore/internal/export"
	"picstore/internal/http-server/middleware/auth"
	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
	"picstore/internal/models"
	"picstore/internal/storage/postgres"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AccessChecker
type AccessChecker interface {
	HasAccess(ctx context.Context, email, itemType string, itemID uuid.UUID) (bool, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Exporter
type Exporter interface {
	Photo(ctx context.Context, id uuid.UUID) (*export.Download, error)
	PrepareAlbum(ctx context.Context, id uuid.UUID) (*export.AlbumExport, error)
}

// New streams a purchased item: the unwatermarked original for a photo,
// a ZIP of originals for an album. Ownership is checked on every
// request; nothing about a past check is cached.
// @Summary      Download a purchased item
// @Description  Streams the original photo or a ZIP archive of an album's originals
// @Tags         download
// @Produce      octet-stream
// @Param        type  path  string  true  "Item type"  Enums(photo, album)
// @Param        id    path  string  true  "Item ID"
// @Success      200  {file}  file
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /download/{type}/{id} [get]
func New(log *slog.Logger, gate AccessChecker, exporter Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.download.New"

		log := log.With(
			slog.String("op", op),
		)

		user, ok := auth.FromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		itemType := chi.URLParam(r, "type")
		if itemType != models.ItemTypePhoto && itemType != models.ItemTypeAlbum {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown item type"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid item id"))
			return
		}

		allowed, err := gate.HasAccess(r.Context(), user.Email, itemType, id)
		if err != nil {
			log.Error("access check failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to verify access"))
			return
		}
		if !allowed {
			log.Warn("download denied",
				slog.String("customer", user.Email),
				slog.String("item_type", itemType),
				slog.String("item_id", id.String()),
			)
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("item not purchased"))
			return
		}

		switch itemType {
		case models.ItemTypePhoto:
			servePhoto(w, r, log, exporter, id)
		case models.ItemTypeAlbum:
			serveAlbum(w, r, log, exporter, id)
		}
	}
}

func servePhoto(w http.ResponseWriter, r *http.Request, log *slog.Logger, exporter Exporter, id uuid.UUID) {
	dl, err := exporter.Photo(r.Context(), id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) || errors.Is(err, export.ErrFileMissing) {
			log.Warn("photo unavailable", slog.String("photo_id", id.String()), sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("photo not found"))
			return
		}

		log.Error("failed to resolve photo", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to prepare download"))
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	http.ServeFile(w, r, dl.Path)
}

func serveAlbum(w http.ResponseWriter, r *http.Request, log *slog.Logger, exporter Exporter, id uuid.UUID) {
	archive, err := exporter.PrepareAlbum(r.Context(), id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) || errors.Is(err, export.ErrNoExportableFiles) {
			log.Warn("album unavailable", slog.String("album_id", id.String()), sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("album not found"))
			return
		}

		log.Error("failed to prepare album archive", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to prepare download"))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive.Filename))

	// Headers are out; a mid-stream failure can only be logged.
	if err = archive.Stream(r.Context(), w); err != nil {
		log.Error("album stream aborted", slog.String("album_id", id.String()), sl.Err(err))
	}
}
