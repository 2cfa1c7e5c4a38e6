package uploadPhoto_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"picstore/internal/http-server/handlers/photo/uploadPhoto"
	ingesterMocks "picstore/internal/http-server/handlers/photo/uploadPhoto/mocks"
	"picstore/internal/models"
	"picstore/internal/storage/postgres"
)

func formFile(t *testing.T, writer *multipart.Writer, field, filename, contentType string, content []byte) {
	t.Helper()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", contentType)

	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
}

func TestUploadPhoto(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	albumID := uuid.New()
	photoID := uuid.New()

	tests := []struct {
		name           string
		field          string
		contentType    string
		empty          bool
		noFile         bool
		mockErr        error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Success",
			field:          "photo",
			contentType:    "image/jpeg",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing File",
			noFile:         true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "no file in request",
		},
		{
			name:           "Wrong Field Name",
			field:          "photos",
			contentType:    "image/jpeg",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "no file in request",
		},
		{
			name:           "Non Image Rejected",
			field:          "photo",
			contentType:    "application/pdf",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "only image files are accepted",
		},
		{
			name:           "Empty File",
			field:          "photo",
			contentType:    "image/jpeg",
			empty:          true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "received empty file",
		},
		{
			name:           "Album Not Found",
			field:          "photo",
			contentType:    "image/jpeg",
			mockErr:        postgres.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "album not found",
		},
		{
			name:           "Pipeline Failure",
			field:          "photo",
			contentType:    "image/jpeg",
			mockErr:        errors.New("decode failed"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to process upload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingesterMock := ingesterMocks.NewPhotoIngester(t)

			if tt.expectedStatus == http.StatusOK {
				ingesterMock.On("Ingest", mock.Anything, albumID, mock.Anything).
					Return(&models.Photo{ID: photoID, AlbumID: albumID}, nil).
					Once()
			} else if tt.mockErr != nil {
				ingesterMock.On("Ingest", mock.Anything, albumID, mock.Anything).
					Return(nil, tt.mockErr).
					Once()
			}

			body := new(bytes.Buffer)
			writer := multipart.NewWriter(body)
			if !tt.noFile {
				content := []byte("fake image bytes")
				if tt.empty {
					content = nil
				}
				formFile(t, writer, tt.field, "shot.jpg", tt.contentType, content)
			}
			require.NoError(t, writer.Close())

			req := httptest.NewRequest(http.MethodPost, "/albums/"+albumID.String()+"/photos/upload", body)
			req.Header.Set("Content-Type", writer.FormDataContentType())

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", albumID.String())
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rr := httptest.NewRecorder()

			handler := uploadPhoto.New(log, ingesterMock, 0)
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp uploadPhoto.UploadResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				require.Equal(t, "OK", resp.Status)
				require.Equal(t, photoID, resp.Photo.ID)
			} else {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				require.Equal(t, "Error", resp["status"])
				require.Equal(t, tt.expectedError, resp["error"])
			}
		})
	}
}

func TestUploadPhotoSecondFileIgnored(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	albumID := uuid.New()
	photoID := uuid.New()

	ingesterMock := ingesterMocks.NewPhotoIngester(t)
	ingesterMock.On("Ingest", mock.Anything, albumID, mock.Anything).
		Return(&models.Photo{ID: photoID, AlbumID: albumID}, nil).
		Once()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	formFile(t, writer, "photo", "first.jpg", "image/jpeg", []byte("first"))
	formFile(t, writer, "photo", "second.jpg", "image/jpeg", []byte("second"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/albums/"+albumID.String()+"/photos/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", albumID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	uploadPhoto.New(log, ingesterMock, 0).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp uploadPhoto.UploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, photoID, resp.Photo.ID)
}

func TestUploadPhotoInvalidAlbumID(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))
	ingesterMock := ingesterMocks.NewPhotoIngester(t)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	formFile(t, writer, "photo", "a.jpg", "image/jpeg", []byte("x"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/albums/not-a-uuid/photos/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	uploadPhoto.New(log, ingesterMock, 0).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}
