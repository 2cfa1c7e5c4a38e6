package tests

import (
	"bytes"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/disintegration/imaging"
)

const (
	host = "0.0.0.0:8082"
)

func authSecret() string {
	if s := os.Getenv("AUTH_SECRET"); s != "" {
		return s
	}
	return "local-secret"
}

func token(t *testing.T, email string, isAdmin bool) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":    email,
		"name":     "E2E",
		"is_admin": isAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(authSecret()))
	require.NoError(t, err)

	return "Bearer " + signed
}

func testJPEG(t *testing.T) []byte {
	t.Helper()

	img := imaging.New(1200, 900, color.NRGBA{R: 120, G: 180, B: 240, A: 255})
	for x := 0; x < 1200; x += 40 {
		for y := 0; y < 900; y++ {
			img.Set(x, y, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))

	return buf.Bytes()
}

func multipartImage(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="` + field + `"; filename="` + filename + `"`},
		"Content-Type":        {"image/jpeg"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestFullMarketplaceCycle(t *testing.T) {
	u := url.URL{Scheme: "http", Host: host}
	e := httpexpect.Default(t, u.String())

	admin := token(t, "admin@example.com", true)
	buyer := token(t, "buyer@example.com", false)

	var albumID, photoID string

	t.Run("Create Album", func(t *testing.T) {
		resp := e.POST("/api/admin/albums").
			WithHeader("Authorization", admin).
			WithJSON(map[string]interface{}{
				"category_id": uuid.NewString(),
				"name":        "E2E Sports Day",
				"price":       5000,
			}).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		album := resp.Value("album").Object()
		album.Value("is_published").Boolean().IsFalse()
		albumID = album.Value("id").String().NotEmpty().Raw()
	})

	t.Run("Unpublished Album Hidden From Public", func(t *testing.T) {
		e.GET("/api/albums/" + albumID).
			Expect().
			Status(http.StatusNotFound)
	})

	t.Run("Upload Photo", func(t *testing.T) {
		body, contentType := multipartImage(t, "photo", "e2e_shot.jpg", testJPEG(t))

		resp := e.POST("/api/albums/"+albumID+"/photos/upload").
			WithHeader("Authorization", admin).
			WithHeader("Content-Type", contentType).
			WithBytes(body.Bytes()).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		photo := resp.Value("photo").Object()
		photoID = photo.Value("id").String().NotEmpty().Raw()

		photo.Value("thumbnail_url").String().Contains("/uploads/thumbnails/")
		photo.Value("watermarked_url").String().Contains("/uploads/watermarked/")
		photo.NotContainsKey("file_path")
		photo.NotContainsKey("original_url")
	})

	t.Run("Non Image Rejected", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Disposition": {`form-data; name="photo"; filename="notes.txt"`},
			"Content-Type":        {"text/plain"},
		})
		require.NoError(t, err)
		_, _ = part.Write([]byte("not an image"))
		require.NoError(t, writer.Close())

		e.POST("/api/albums/"+albumID+"/photos/upload").
			WithHeader("Authorization", admin).
			WithHeader("Content-Type", writer.FormDataContentType()).
			WithBytes(body.Bytes()).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("Publish Album", func(t *testing.T) {
		e.PATCH("/api/admin/albums/"+albumID+"/publish").
			WithHeader("Authorization", admin).
			Expect().
			Status(http.StatusOK)
	})

	t.Run("Public Can Browse", func(t *testing.T) {
		resp := e.GET("/api/albums/" + albumID).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.Value("album").Object().Value("photo_count").Number().Gt(0)

		photos := e.GET("/api/albums/" + albumID + "/photos").
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("photos").Array()

		photos.Length().Gt(0)
	})

	t.Run("First Upload Produced Cover", func(t *testing.T) {
		// The cover job travels through the queue.
		time.Sleep(5 * time.Second)

		e.GET("/api/albums/"+albumID).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("album").Object().
			Value("cover_image").String().Contains("/uploads/thumbnails/album_" + albumID)
	})

	t.Run("Download Requires Auth", func(t *testing.T) {
		e.GET("/api/download/photo/" + photoID).
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("Download Without Purchase Forbidden", func(t *testing.T) {
		e.GET("/api/download/photo/"+photoID).
			WithHeader("Authorization", buyer).
			Expect().
			Status(http.StatusForbidden)
	})

	t.Run("Purchase Then Download", func(t *testing.T) {
		e.POST("/api/orders").
			WithHeader("Authorization", buyer).
			WithJSON(map[string]interface{}{
				"total_amount": 1200,
				"items": []map[string]interface{}{
					{"type": "photo", "item_id": photoID, "name": "e2e_shot.jpg", "price": 1200},
				},
			}).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("order_id").String().NotEmpty()

		e.GET("/api/orders").
			WithHeader("Authorization", buyer).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("orders").Array().Length().Gt(0)

		resp := e.GET("/api/download/photo/"+photoID).
			WithHeader("Authorization", buyer).
			Expect().
			Status(http.StatusOK)

		resp.Header("Content-Disposition").Contains("attachment")
	})

	t.Run("Album Download As ZIP", func(t *testing.T) {
		e.POST("/api/orders").
			WithHeader("Authorization", buyer).
			WithJSON(map[string]interface{}{
				"total_amount": 5000,
				"items": []map[string]interface{}{
					{"type": "album", "item_id": albumID, "name": "E2E Sports Day", "price": 5000},
				},
			}).
			Expect().
			Status(http.StatusOK)

		resp := e.GET("/api/download/album/"+albumID).
			WithHeader("Authorization", buyer).
			Expect().
			Status(http.StatusOK)

		resp.Header("Content-Type").IsEqual("application/zip")
		resp.Header("Content-Disposition").Contains(".zip")
	})

	t.Run("Delete Photo", func(t *testing.T) {
		e.DELETE("/api/photos/"+photoID).
			WithHeader("Authorization", admin).
			Expect().
			Status(http.StatusOK)

		e.GET("/api/photos/" + photoID).
			Expect().
			Status(http.StatusNotFound)
	})
}

func TestAdminBoundary(t *testing.T) {
	u := url.URL{Scheme: "http", Host: host}
	e := httpexpect.Default(t, u.String())

	buyer := token(t, "buyer@example.com", false)

	e.POST("/api/admin/albums").
		WithHeader("Authorization", buyer).
		WithJSON(map[string]interface{}{"category_id": uuid.NewString(), "name": "Nope"}).
		Expect().
		Status(http.StatusForbidden)

	e.POST("/api/admin/albums").
		WithJSON(map[string]interface{}{"category_id": uuid.NewString(), "name": "Nope"}).
		Expect().
		Status(http.StatusUnauthorized)
}
