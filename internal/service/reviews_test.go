package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smr-site/reviews-api/internal/domain"
	"github.com/smr-site/reviews-api/internal/storage"
)

type MockReviewsStorage struct {
	MockRedeem        func(sub domain.ReviewSubmission) error
	MockPublicReviews func(limit int) ([]domain.Review, error)
	MockAdminReviews  func(limit int) ([]domain.Review, int, error)
	MockDeleteReview  func(id int64) error
}

func (m *MockReviewsStorage) RedeemCodeAndInsertReview(sub domain.ReviewSubmission) error {
	return m.MockRedeem(sub)
}
func (m *MockReviewsStorage) PublicReviews(limit int) ([]domain.Review, error) {
	return m.MockPublicReviews(limit)
}
func (m *MockReviewsStorage) AdminReviews(limit int) ([]domain.Review, int, error) {
	return m.MockAdminReviews(limit)
}
func (m *MockReviewsStorage) DeleteReview(id int64) error { return m.MockDeleteReview(id) }

func validSubmission() domain.ReviewSubmission {
	return domain.ReviewSubmission{
		Name:    "Alice",
		Email:   "alice@example.com",
		Rating:  5,
		Message: "Lovely stonework",
		Code:    "123",
	}
}

func TestReviewsSubmit(t *testing.T) {
	t.Run("valid submission reaches storage sanitized", func(t *testing.T) {
		var got domain.ReviewSubmission
		reviews := NewReviews(&MockReviewsStorage{
			MockRedeem: func(sub domain.ReviewSubmission) error { got = sub; return nil },
		})

		sub := validSubmission()
		sub.Name = "  Alice <script>alert(1)</script> "
		sub.Message = "<b>Lovely</b> stonework"
		require.NoError(t, reviews.Submit(sub))

		assert.Equal(t, "Alice", got.Name)
		assert.Equal(t, "Lovely stonework", got.Message)
		assert.Equal(t, "123", got.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		reviews := NewReviews(&MockReviewsStorage{})
		sub := validSubmission()
		sub.Message = "   "
		assertStatusError(t, reviews.Submit(sub), "name, rating, and message are required", 400)
	})

	t.Run("rating out of range", func(t *testing.T) {
		reviews := NewReviews(&MockReviewsStorage{})
		for _, rating := range []int{0, 6, -1} {
			sub := validSubmission()
			sub.Rating = rating
			assertStatusError(t, reviews.Submit(sub), "rating must be between 1 and 5", 400)
		}
	})

	t.Run("malformed code rejected before storage", func(t *testing.T) {
		reviews := NewReviews(&MockReviewsStorage{})
		sub := validSubmission()
		sub.Code = "12ab"
		assertStatusError(t, reviews.Submit(sub), "invalid_code", 403)
	})

	t.Run("spent code maps to invalid_code", func(t *testing.T) {
		reviews := NewReviews(&MockReviewsStorage{
			MockRedeem: func(domain.ReviewSubmission) error { return storage.ErrCodeUnavailable },
		})
		assertStatusError(t, reviews.Submit(validSubmission()), "invalid_code", 403)
	})

	t.Run("locked database maps to db_busy", func(t *testing.T) {
		reviews := NewReviews(&MockReviewsStorage{
			MockRedeem: func(domain.ReviewSubmission) error { return storage.ErrBusy },
		})
		assertStatusError(t, reviews.Submit(validSubmission()), "db_busy", 503)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		dbErr := errors.New("disk full")
		reviews := NewReviews(&MockReviewsStorage{
			MockRedeem: func(domain.ReviewSubmission) error { return dbErr },
		})
		assert.ErrorIs(t, reviews.Submit(validSubmission()), dbErr)
	})
}

func TestReviewsPublic_FixedLimit(t *testing.T) {
	reviews := NewReviews(&MockReviewsStorage{
		MockPublicReviews: func(limit int) ([]domain.Review, error) {
			assert.Equal(t, 50, limit)
			return []domain.Review{}, nil
		},
	})

	_, err := reviews.Public()
	require.NoError(t, err)
}

func TestReviewsAdminList_LimitClamping(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, 500},
		{"within range kept", 42, 42},
		{"above maximum clamped", 999999, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := NewReviews(&MockReviewsStorage{
				MockAdminReviews: func(limit int) ([]domain.Review, int, error) {
					assert.Equal(t, tt.want, limit)
					return nil, 0, nil
				},
			})
			_, _, err := reviews.AdminList(tt.limit)
			require.NoError(t, err)
		})
	}
}

func TestReviewsDelete(t *testing.T) {
	t.Run("missing id maps to not_found", func(t *testing.T) {
		reviews := NewReviews(&MockReviewsStorage{
			MockDeleteReview: func(int64) error { return storage.ErrNotFound },
		})
		assertStatusError(t, reviews.Delete(42), "not_found", 404)
	})

	t.Run("success", func(t *testing.T) {
		reviews := NewReviews(&MockReviewsStorage{
			MockDeleteReview: func(id int64) error {
				assert.Equal(t, int64(42), id)
				return nil
			},
		})
		assert.NoError(t, reviews.Delete(42))
	})
}
