package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/smr-site/reviews-api/internal/domain"
	"github.com/smr-site/reviews-api/internal/storage"
)

// InsertImage stores a gallery row and fills in the generated id and
// creation timestamp.
func (s *Storage) InsertImage(img *domain.GalleryImage) error {
	res, err := s.db.Exec(`
		INSERT INTO gallery_images (path, original_name, category, alt, mime_type, width, height)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		img.Path, nullable(img.OriginalName), img.Category, nullable(img.Alt),
		nullable(img.MimeType), img.Width, img.Height)
	if err != nil {
		return fmt.Errorf("insert gallery image: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("gallery image id: %w", err)
	}
	img.Id = id

	if err := s.db.QueryRow(
		"SELECT created_at FROM gallery_images WHERE id = ?", id,
	).Scan(&img.CreatedAt); err != nil {
		return fmt.Errorf("gallery image created_at: %w", err)
	}

	return nil
}

// ListImages returns all gallery images, newest first.
func (s *Storage) ListImages() ([]domain.GalleryImage, error) {
	rows, err := s.db.Query(`
		SELECT id, path, COALESCE(original_name, ''), category, COALESCE(alt, ''),
		       COALESCE(mime_type, ''), width, height, created_at
		  FROM gallery_images
		 ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query gallery images: %w", err)
	}
	defer rows.Close()

	images := []domain.GalleryImage{}
	for rows.Next() {
		var img domain.GalleryImage
		if err := rows.Scan(&img.Id, &img.Path, &img.OriginalName, &img.Category,
			&img.Alt, &img.MimeType, &img.Width, &img.Height, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// GetImage returns a single gallery image by id.
func (s *Storage) GetImage(id int64) (*domain.GalleryImage, error) {
	var img domain.GalleryImage
	err := s.db.QueryRow(`
		SELECT id, path, COALESCE(original_name, ''), category, COALESCE(alt, ''),
		       COALESCE(mime_type, ''), width, height, created_at
		  FROM gallery_images
		 WHERE id = ?`, id).
		Scan(&img.Id, &img.Path, &img.OriginalName, &img.Category,
			&img.Alt, &img.MimeType, &img.Width, &img.Height, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get gallery image: %w", err)
	}
	return &img, nil
}

// DeleteImage removes a gallery row by id. Returns storage.ErrNotFound when
// the id does not exist.
func (s *Storage) DeleteImage(id int64) error {
	res, err := s.db.Exec("DELETE FROM gallery_images WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete gallery image rows affected: %w", err)
	}
	if n != 1 {
		return storage.ErrNotFound
	}
	return nil
}
