package service

import (
	goerrors "errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/smr-site/reviews-api/internal/domain"
	"github.com/smr-site/reviews-api/internal/errors"
	"github.com/smr-site/reviews-api/internal/logger"
	"github.com/smr-site/reviews-api/internal/storage"
)

// to mock service in tests
type GalleryService interface {
	List() ([]domain.GalleryImage, error)
	Upload(file *domain.PendingFile, category, alt string) (*domain.GalleryImage, error)
	Delete(id int64) error
}

type Gallery struct {
	storage GalleryStorage
	media   MediaStorage
}

type GalleryStorage interface {
	InsertImage(img *domain.GalleryImage) error
	ListImages() ([]domain.GalleryImage, error)
	GetImage(id int64) (*domain.GalleryImage, error)
	DeleteImage(id int64) error
}

type MediaStorage interface {
	Save(fileData io.Reader, category, filename string) (string, error)
	Delete(relativePath string) error
}

func NewGallery(storage GalleryStorage, media MediaStorage) *Gallery {
	return &Gallery{storage: storage, media: media}
}

func (g *Gallery) List() ([]domain.GalleryImage, error) {
	return g.storage.ListImages()
}

// Upload persists the file under a generated name and records the row. The
// original filename is kept for display only and never reaches the disk.
func (g *Gallery) Upload(file *domain.PendingFile, category, alt string) (*domain.GalleryImage, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, &errors.ErrorWithStatusCode{Message: "missing_category", StatusCode: 400}
	}

	storedName := uuid.New().String() + storedExtension(file.Filename)
	path, err := g.media.Save(file.Data, category, storedName)
	if err != nil {
		return nil, err
	}

	img := &domain.GalleryImage{
		Path:         path,
		OriginalName: file.Filename,
		Category:     category,
		Alt:          strings.TrimSpace(alt),
		MimeType:     file.MimeType,
		Width:        file.Width,
		Height:       file.Height,
	}
	if err := g.storage.InsertImage(img); err != nil {
		// don't leave an orphan file behind
		if rmErr := g.media.Delete(path); rmErr != nil {
			logger.Log.Warn("failed to remove orphan upload", "path", path, "error", rmErr)
		}
		return nil, err
	}

	return img, nil
}

// Delete removes the row and then the file. A missing file is not an error;
// a failed file removal is logged but does not fail the request, since the
// row is already gone.
func (g *Gallery) Delete(id int64) error {
	img, err := g.storage.GetImage(id)
	if goerrors.Is(err, storage.ErrNotFound) {
		return &errors.ErrorWithStatusCode{Message: "not_found", StatusCode: 404}
	}
	if err != nil {
		return err
	}

	if err := g.storage.DeleteImage(id); err != nil {
		if goerrors.Is(err, storage.ErrNotFound) {
			return &errors.ErrorWithStatusCode{Message: "not_found", StatusCode: 404}
		}
		return err
	}

	if err := g.media.Delete(img.Path); err != nil {
		logger.Log.Warn("failed to remove media file", "path", img.Path, "error", err)
	}
	return nil
}

// storedExtension returns a safe lowercase extension for the stored name.
func storedExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 8 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
