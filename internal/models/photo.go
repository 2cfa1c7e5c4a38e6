package models

import (
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID            uuid.UUID `db:"id"`
	AlbumID       uuid.UUID `db:"album_id"`
	Filename      string    `db:"filename"`
	OriginalURL   string    `db:"original_url"`
	ThumbnailURL  string    `db:"thumbnail_url"`
	WatermarkedURL string   `db:"watermarked_url"`
	Price         int       `db:"price"`
	Meta          PhotoMeta `db:"metadata"`
	CreatedAt     time.Time `db:"created_at"`
}

// PhotoMeta is persisted as a jsonb document alongside the photo row.
// FilePath is the on-disk location of the original, kept for cover
// regeneration; it must never appear in public API responses.
type PhotoMeta struct {
	DateTaken   time.Time `json:"date_taken"`
	Description string    `json:"description"`
	FilePath    string    `json:"file_path,omitempty"`
}

// PhotoView is the public shape of a photo. The original URL and the
// on-disk path stay server-side; browsing clients get only the
// watermarked rendition and the thumbnail.
type PhotoView struct {
	ID             uuid.UUID `json:"id"`
	AlbumID        uuid.UUID `json:"album_id"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	WatermarkedURL string    `json:"watermarked_url"`
	Price          int       `json:"price"`
	DateTaken      time.Time `json:"date_taken"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (p *Photo) View() PhotoView {
	return PhotoView{
		ID:             p.ID,
		AlbumID:        p.AlbumID,
		ThumbnailURL:   p.ThumbnailURL,
		WatermarkedURL: p.WatermarkedURL,
		Price:          p.Price,
		DateTaken:      p.Meta.DateTaken,
		Description:    p.Meta.Description,
		CreatedAt:      p.CreatedAt,
	}
}
