package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/smr-site/reviews-api/internal/domain"
	"github.com/smr-site/reviews-api/internal/storage"
)

// RedeemCodeAndInsertReview marks the submission's code as used and inserts
// the review in one transaction. If the code is unknown or already redeemed
// the transaction rolls back and storage.ErrCodeUnavailable is returned, so
// a code can never be spent without its review landing.
func (s *Storage) RedeemCodeAndInsertReview(sub domain.ReviewSubmission) error {
	tx, err := s.db.Begin()
	if err != nil {
		if isBusy(err) {
			return storage.ErrBusy
		}
		return fmt.Errorf("begin redeem: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE review_codes
		   SET used_at = datetime('now'),
		       used_by_email = ?,
		       used_by_name  = ?
		 WHERE code = ?
		   AND used_at IS NULL`,
		nullable(sub.Email), sub.Name, sub.Code)
	if err != nil {
		if isBusy(err) {
			return storage.ErrBusy
		}
		return fmt.Errorf("redeem code: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("redeem rows affected: %w", err)
	}
	if n != 1 {
		return storage.ErrCodeUnavailable
	}

	if _, err := tx.Exec(
		"INSERT INTO reviews (name, email, rating, message) VALUES (?, ?, ?, ?)",
		sub.Name, nullable(sub.Email), sub.Rating, sub.Message,
	); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return tx.Commit()
}

// PublicReviews returns the newest reviews for the public site.
func (s *Storage) PublicReviews(limit int) ([]domain.Review, error) {
	rows, err := s.db.Query(`
		SELECT id, name, rating, message, created_at
		  FROM reviews
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query public reviews: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows, false)
}

// AdminReviews returns the newest reviews including email addresses, plus
// the total row count.
func (s *Storage) AdminReviews(limit int) ([]domain.Review, int, error) {
	rows, err := s.db.Query(`
		SELECT id, name, COALESCE(email, ''), rating, message, created_at
		  FROM reviews
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("query admin reviews: %w", err)
	}
	defer rows.Close()

	reviews, err := scanReviews(rows, true)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM reviews").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	return reviews, total, nil
}

// DeleteReview removes a review by id. Returns storage.ErrNotFound when the
// id does not exist.
func (s *Storage) DeleteReview(id int64) error {
	res, err := s.db.Exec("DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review rows affected: %w", err)
	}
	if n != 1 {
		return storage.ErrNotFound
	}
	return nil
}

func scanReviews(rows *sql.Rows, withEmail bool) ([]domain.Review, error) {
	reviews := []domain.Review{}
	for rows.Next() {
		var r domain.Review
		var err error
		if withEmail {
			err = rows.Scan(&r.Id, &r.Name, &r.Email, &r.Rating, &r.Message, &r.CreatedAt)
		} else {
			err = rows.Scan(&r.Id, &r.Name, &r.Rating, &r.Message, &r.CreatedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return reviews, nil
}

// nullable maps "" to NULL so optional columns stay NULL instead of empty.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
