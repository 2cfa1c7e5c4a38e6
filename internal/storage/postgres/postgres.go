package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"picstore/internal/config"
	"picstore/internal/models"

	_ "github.com/lib/pq"
)

// ErrNotFound reports a missing album, photo or order.
var ErrNotFound = errors.New("not found")

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}

	if err = s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return s, nil
}

func (s *Storage) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS albums (
            id UUID PRIMARY KEY,
            category_id UUID NOT NULL,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            cover_image TEXT,
            price INTEGER NOT NULL DEFAULT 0,
            is_published BOOLEAN NOT NULL DEFAULT FALSE,
            cover_requested BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS photos (
            id UUID PRIMARY KEY,
            album_id UUID NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
            filename TEXT NOT NULL,
            original_url TEXT NOT NULL,
            thumbnail_url TEXT NOT NULL,
            watermarked_url TEXT NOT NULL,
            price INTEGER NOT NULL,
            metadata JSONB NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS photos_album_id_idx ON photos (album_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            customer_email TEXT NOT NULL,
            customer_name TEXT NOT NULL,
            total_amount INTEGER NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            items JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS orders_customer_email_idx ON orders (customer_email)`,
	}

	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (s *Storage) CreateAlbum(ctx context.Context, album *models.Album) (*models.Album, error) {
	const op = "storage.postgres.CreateAlbum"

	albumID := uuid.New()

	query := `
        INSERT INTO albums (id, category_id, name, description, price)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, category_id, name, description, cover_image, price, is_published, cover_requested, created_at`

	var created models.Album

	err := s.DB.QueryRowContext(ctx, query, albumID, album.CategoryID, album.Name, album.Description, album.Price).Scan(
		&created.ID,
		&created.CategoryID,
		&created.Name,
		&created.Description,
		&created.CoverImage,
		&created.Price,
		&created.IsPublished,
		&created.CoverRequested,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}

func (s *Storage) GetAlbum(ctx context.Context, id uuid.UUID) (*models.Album, error) {
	const op = "storage.postgres.GetAlbum"

	query := `
        SELECT id, category_id, name, description, cover_image, price, is_published, cover_requested, created_at
        FROM albums
        WHERE id = $1`

	album := &models.Album{}

	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&album.ID,
		&album.CategoryID,
		&album.Name,
		&album.Description,
		&album.CoverImage,
		&album.Price,
		&album.IsPublished,
		&album.CoverRequested,
		&album.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: album %s: %w", op, id, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return album, nil
}

func (s *Storage) UpdateAlbumCover(ctx context.Context, id uuid.UUID, coverImage string) error {
	const op = "storage.postgres.UpdateAlbumCover"

	result, err := s.DB.ExecContext(ctx, `UPDATE albums SET cover_image = $1 WHERE id = $2`, coverImage, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: album %s: %w", op, id, ErrNotFound)
	}

	return nil
}

func (s *Storage) SetAlbumPublished(ctx context.Context, id uuid.UUID, published bool) error {
	const op = "storage.postgres.SetAlbumPublished"

	result, err := s.DB.ExecContext(ctx, `UPDATE albums SET is_published = $1 WHERE id = $2`, published, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: album %s: %w", op, id, ErrNotFound)
	}

	return nil
}

// TryMarkCoverRequested flips the per-album cover flag and reports
// whether this caller won. At most one concurrent uploader gets true,
// so only one automatic cover job is ever published per album.
func (s *Storage) TryMarkCoverRequested(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "storage.postgres.TryMarkCoverRequested"

	query := `
        UPDATE albums
        SET cover_requested = TRUE
        WHERE id = $1 AND cover_requested = FALSE AND cover_image IS NULL`

	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return rowsAffected > 0, nil
}

func (s *Storage) CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	const op = "storage.postgres.CreatePhoto"

	photoID := uuid.New()

	meta, err := json.Marshal(photo.Meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
        INSERT INTO photos (id, album_id, filename, original_url, thumbnail_url, watermarked_url, price, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at`

	created := *photo

	err = s.DB.QueryRowContext(ctx, query,
		photoID,
		photo.AlbumID,
		photo.Filename,
		photo.OriginalURL,
		photo.ThumbnailURL,
		photo.WatermarkedURL,
		photo.Price,
		meta,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}

func (s *Storage) GetPhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	const op = "storage.postgres.GetPhoto"

	query := `
        SELECT id, album_id, filename, original_url, thumbnail_url, watermarked_url, price, metadata, created_at
        FROM photos
        WHERE id = $1`

	photo, err := scanPhoto(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: photo %s: %w", op, id, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photo, nil
}

// GetPhotosByAlbum returns the album's photos ordered by upload time,
// earliest first.
func (s *Storage) GetPhotosByAlbum(ctx context.Context, albumID uuid.UUID) ([]models.Photo, error) {
	const op = "storage.postgres.GetPhotosByAlbum"

	query := `
        SELECT id, album_id, filename, original_url, thumbnail_url, watermarked_url, price, metadata, created_at
        FROM photos
        WHERE album_id = $1
        ORDER BY created_at ASC, id ASC`

	rows, err := s.DB.QueryContext(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		photos = append(photos, *photo)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photos, nil
}

func (s *Storage) CountPhotosByAlbum(ctx context.Context, albumID uuid.UUID) (int, error) {
	const op = "storage.postgres.CountPhotosByAlbum"

	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos WHERE album_id = $1`, albumID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func (s *Storage) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.DeletePhoto"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: photo %s: %w", op, id, ErrNotFound)
	}

	return nil
}

func (s *Storage) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	const op = "storage.postgres.CreateOrder"

	orderID := uuid.New()

	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
        INSERT INTO orders (id, customer_email, customer_name, total_amount, status, items)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	created := *order

	err = s.DB.QueryRowContext(ctx, query,
		orderID,
		order.CustomerEmail,
		order.CustomerName,
		order.TotalAmount,
		order.Status,
		items,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}

// GetOrdersByEmail returns every order placed by the given customer
// identity, any status.
func (s *Storage) GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	const op = "storage.postgres.GetOrdersByEmail"

	query := `
        SELECT id, customer_email, customer_name, total_amount, status, items, created_at
        FROM orders
        WHERE customer_email = $1
        ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var items []byte

		err = rows.Scan(
			&order.ID,
			&order.CustomerEmail,
			&order.CustomerName,
			&order.TotalAmount,
			&order.Status,
			&items,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if err = json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (*models.Photo, error) {
	var photo models.Photo
	var meta []byte

	err := row.Scan(
		&photo.ID,
		&photo.AlbumID,
		&photo.Filename,
		&photo.OriginalURL,
		&photo.ThumbnailURL,
		&photo.WatermarkedURL,
		&photo.Price,
		&meta,
		&photo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(meta, &photo.Meta); err != nil {
		return nil, err
	}

	return &photo, nil
}
