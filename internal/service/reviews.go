package service

import (
	goerrors "errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/smr-site/reviews-api/internal/domain"
	"github.com/smr-site/reviews-api/internal/errors"
	"github.com/smr-site/reviews-api/internal/storage"
)

// to mock service in tests
type ReviewsService interface {
	Submit(sub domain.ReviewSubmission) error
	Public() ([]domain.Review, error)
	AdminList(limit int) ([]domain.Review, int, error)
	Delete(id int64) error
}

const (
	publicReviewLimit = 50
	defaultAdminLimit = 500
	maxAdminLimit     = 5000
)

type Reviews struct {
	storage   ReviewsStorage
	sanitizer *bluemonday.Policy
}

type ReviewsStorage interface {
	RedeemCodeAndInsertReview(sub domain.ReviewSubmission) error
	PublicReviews(limit int) ([]domain.Review, error)
	AdminReviews(limit int) ([]domain.Review, int, error)
	DeleteReview(id int64) error
}

func NewReviews(storage ReviewsStorage) *Reviews {
	// Reviews are rendered as plain text; strip all markup on the way in.
	return &Reviews{storage: storage, sanitizer: bluemonday.StrictPolicy()}
}

var errInvalidCode = &errors.ErrorWithStatusCode{Message: "invalid_code", StatusCode: 403}

// Submit validates the submission, redeems its access code and stores the
// review. Redemption and insertion happen in one storage transaction.
func (s *Reviews) Submit(sub domain.ReviewSubmission) error {
	sub.Name = strings.TrimSpace(s.sanitizer.Sanitize(sub.Name))
	sub.Message = strings.TrimSpace(s.sanitizer.Sanitize(sub.Message))
	sub.Email = strings.TrimSpace(sub.Email)

	if sub.Name == "" || sub.Message == "" {
		return &errors.ErrorWithStatusCode{
			Message:    "name, rating, and message are required",
			StatusCode: 400,
		}
	}
	if sub.Rating < 1 || sub.Rating > 5 {
		return &errors.ErrorWithStatusCode{
			Message:    "rating must be between 1 and 5",
			StatusCode: 400,
		}
	}
	if !domain.ValidCode(sub.Code) {
		return errInvalidCode
	}

	err := s.storage.RedeemCodeAndInsertReview(sub)
	switch {
	case goerrors.Is(err, storage.ErrCodeUnavailable):
		return errInvalidCode
	case goerrors.Is(err, storage.ErrBusy):
		return &errors.ErrorWithStatusCode{Message: "db_busy", StatusCode: 503}
	}
	return err
}

// Public returns the newest reviews for the public site.
func (s *Reviews) Public() ([]domain.Review, error) {
	return s.storage.PublicReviews(publicReviewLimit)
}

// AdminList returns the newest reviews with emails plus the total count.
func (s *Reviews) AdminList(limit int) ([]domain.Review, int, error) {
	if limit <= 0 {
		limit = defaultAdminLimit
	}
	limit = max(1, min(limit, maxAdminLimit))

	return s.storage.AdminReviews(limit)
}

// Delete removes a review by id.
func (s *Reviews) Delete(id int64) error {
	err := s.storage.DeleteReview(id)
	if goerrors.Is(err, storage.ErrNotFound) {
		return &errors.ErrorWithStatusCode{Message: "not_found", StatusCode: 404}
	}
	return err
}
