package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
)

const (
	ItemTypePhoto = "photo"
	ItemTypeAlbum = "album"
)

type Order struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	CustomerEmail string      `db:"customer_email" json:"customer_email"`
	CustomerName  string      `db:"customer_name" json:"customer_name"`
	TotalAmount   int         `db:"total_amount" json:"total_amount"`
	Status        string      `db:"status" json:"status"`
	Items         []OrderItem `db:"items" json:"items"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// OrderItem is one purchased line; the list is immutable after creation.
type OrderItem struct {
	Type         string    `json:"type"`
	ItemID       uuid.UUID `json:"item_id"`
	Name         string    `json:"name"`
	Price        int       `json:"price"`
	ThumbnailURL string    `json:"thumbnail_url"`
}
