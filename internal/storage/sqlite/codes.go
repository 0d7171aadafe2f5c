package sqlite

import (
	"fmt"

	"github.com/smr-site/reviews-api/internal/domain"
)

// InsertCodes adds codes to the pool, silently skipping duplicates, and
// returns the number of codes submitted (not the number newly inserted,
// mirroring the add endpoint's contract).
func (s *Storage) InsertCodes(codes []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert codes: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO review_codes(code) VALUES (?)")
	if err != nil {
		return fmt.Errorf("prepare insert code: %w", err)
	}
	defer stmt.Close()

	for _, code := range codes {
		if _, err := stmt.Exec(code); err != nil {
			return fmt.Errorf("insert code %s: %w", code, err)
		}
	}

	return tx.Commit()
}

// DeleteCode removes a code regardless of its used state and returns how
// many rows were deleted (0 or 1).
func (s *Storage) DeleteCode(code string) (int, error) {
	res, err := s.db.Exec("DELETE FROM review_codes WHERE code = ?", code)
	if err != nil {
		return 0, fmt.Errorf("delete code: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete code rows affected: %w", err)
	}
	return int(n), nil
}

// CodeSummary returns pool counts plus previews of both partitions, each
// capped at previewLimit rows.
func (s *Storage) CodeSummary(previewLimit int) (*domain.CodeSummary, error) {
	summary := &domain.CodeSummary{
		Unused: []domain.Code{},
		Used:   []domain.UsedCode{},
	}

	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM review_codes WHERE used_at IS NULL",
	).Scan(&summary.Counts.Unused); err != nil {
		return nil, fmt.Errorf("count unused codes: %w", err)
	}
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM review_codes WHERE used_at IS NOT NULL",
	).Scan(&summary.Counts.Used); err != nil {
		return nil, fmt.Errorf("count used codes: %w", err)
	}
	summary.Counts.Total = summary.Counts.Unused + summary.Counts.Used

	unusedRows, err := s.db.Query(`
		SELECT code, created_at
		  FROM review_codes
		 WHERE used_at IS NULL
		 ORDER BY created_at DESC, code
		 LIMIT ?`, previewLimit)
	if err != nil {
		return nil, fmt.Errorf("query unused codes: %w", err)
	}
	defer unusedRows.Close()

	for unusedRows.Next() {
		var c domain.Code
		if err := unusedRows.Scan(&c.Code, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unused code: %w", err)
		}
		summary.Unused = append(summary.Unused, c)
	}
	if err := unusedRows.Err(); err != nil {
		return nil, err
	}

	usedRows, err := s.db.Query(`
		SELECT code, created_at, used_at, COALESCE(used_by_name, ''), COALESCE(used_by_email, '')
		  FROM review_codes
		 WHERE used_at IS NOT NULL
		 ORDER BY used_at DESC, code
		 LIMIT ?`, previewLimit)
	if err != nil {
		return nil, fmt.Errorf("query used codes: %w", err)
	}
	defer usedRows.Close()

	for usedRows.Next() {
		var c domain.UsedCode
		if err := usedRows.Scan(&c.Code, &c.CreatedAt, &c.UsedAt, &c.UsedByName, &c.UsedByEmail); err != nil {
			return nil, fmt.Errorf("scan used code: %w", err)
		}
		summary.Used = append(summary.Used, c)
	}
	if err := usedRows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}

// UnusedCodes returns every unused code ordered by value, for the CSV export.
func (s *Storage) UnusedCodes() ([]string, error) {
	rows, err := s.db.Query("SELECT code FROM review_codes WHERE used_at IS NULL ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("query unused codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
