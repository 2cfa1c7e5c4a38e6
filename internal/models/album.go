package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Album struct {
	ID             uuid.UUID      `db:"id"`
	CategoryID     uuid.UUID      `db:"category_id"`
	Name           string         `db:"name"`
	Description    string         `db:"description"`
	CoverImage     sql.NullString `db:"cover_image"`
	Price          int            `db:"price"`
	IsPublished    bool           `db:"is_published"`
	CoverRequested bool           `db:"cover_requested"`
	CreatedAt      time.Time      `db:"created_at"`
}

// AlbumView is the public shape of an album.
type AlbumView struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Price       int       `json:"price"`
	IsPublished bool      `json:"is_published"`
	PhotoCount  int       `json:"photo_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Album) View(photoCount int) AlbumView {
	view := AlbumView{
		ID:          a.ID,
		CategoryID:  a.CategoryID,
		Name:        a.Name,
		Description: a.Description,
		Price:       a.Price,
		IsPublished: a.IsPublished,
		PhotoCount:  photoCount,
		CreatedAt:   a.CreatedAt,
	}
	if a.CoverImage.Valid {
		view.CoverImage = a.CoverImage.String
	}

	return view
}
