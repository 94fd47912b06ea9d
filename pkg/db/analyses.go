package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pagelens/pagelens/models"
)

// ErrNotFound is returned when no analysis exists for a given ID.
var ErrNotFound = errors.New("analysis not found")

// timeLayout matches SQLite's CURRENT_TIMESTAMP format, so stored
// values and datetime('now') comparisons stay in one representation.
const timeLayout = "2006-01-02 15:04:05"

// InsertReport stores an analysis outcome together with its ranked
// similar pages, atomically.
func (db *DB) InsertReport(r *models.Report) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	wc := r.WordCount
	var (
		sentenceCount int
		readability   float64
		thin          bool
	)
	if r.Features != nil {
		wc = r.Features.WordCount
		sentenceCount = r.Features.SentenceCount
		readability = r.Features.Readability
		thin = r.Features.IsThin
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.Exec(`
		INSERT INTO analyses (analysis_id, url, status, error_type, title,
			word_count, sentence_count, readability, is_thin,
			quality, language, content_hash, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.URL, r.Status, nullString(r.ErrorType), nullString(r.Title),
		wc, sentenceCount, readability, thin,
		nullString(string(r.Quality)), nullString(r.Language), nullString(r.ContentHash),
		r.DurationMS, createdAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	for i, s := range r.Similar {
		_, err := tx.Exec(`
			INSERT INTO similar_pages (analysis_id, rank, url, similarity, word_count, quality)
			VALUES (?, ?, ?, ?, ?, ?)
		`, r.ID, i+1, s.URL, s.Similarity, s.WordCount, nullString(string(s.Quality)))
		if err != nil {
			return fmt.Errorf("failed to insert similar page: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves one stored analysis with its similar pages.
func (db *DB) GetAnalysis(id string) (*models.Report, error) {
	r := models.Report{Features: &models.FeatureSet{}}
	var errorType, title, quality, language, contentHash sql.NullString

	err := db.QueryRow(`
		SELECT analysis_id, url, status, error_type, title,
			word_count, sentence_count, readability, is_thin,
			quality, language, content_hash, duration_ms, created_at
		FROM analyses
		WHERE analysis_id = ?
	`, id).Scan(&r.ID, &r.URL, &r.Status, &errorType, &title,
		&r.Features.WordCount, &r.Features.SentenceCount, &r.Features.Readability, &r.Features.IsThin,
		&quality, &language, &contentHash, &r.DurationMS, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	r.ErrorType = errorType.String
	r.Title = title.String
	r.Quality = models.QualityLabel(quality.String)
	r.Language = language.String
	r.ContentHash = contentHash.String
	r.WordCount = r.Features.WordCount
	if r.Failed() {
		r.Features = nil
	}

	similar, err := db.GetSimilarPages(id)
	if err != nil {
		return nil, err
	}
	r.Similar = similar

	return &r, nil
}

// GetSimilarPages returns the recorded rankings for an analysis, in
// rank order.
func (db *DB) GetSimilarPages(analysisID string) ([]models.SimilarityResult, error) {
	rows, err := db.Query(`
		SELECT url, similarity, word_count, quality
		FROM similar_pages
		WHERE analysis_id = ?
		ORDER BY rank
	`, analysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to get similar pages: %w", err)
	}
	defer rows.Close()

	var results []models.SimilarityResult
	for rows.Next() {
		var s models.SimilarityResult
		var quality sql.NullString
		if err := rows.Scan(&s.URL, &s.Similarity, &s.WordCount, &quality); err != nil {
			return nil, fmt.Errorf("failed to scan similar page: %w", err)
		}
		s.Quality = models.QualityLabel(quality.String)
		results = append(results, s)
	}
	return results, rows.Err()
}

// ListAnalyses returns stored analyses newest first, without their
// similar-page rankings. A limit of 0 returns everything.
func (db *DB) ListAnalyses(limit int) ([]models.Report, error) {
	query := `
		SELECT analysis_id, url, status, error_type, title,
			word_count, quality, language, duration_ms, created_at
		FROM analyses
		ORDER BY created_at DESC, analysis_id
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var r models.Report
		var errorType, title, quality, language sql.NullString
		if err := rows.Scan(&r.ID, &r.URL, &r.Status, &errorType, &title,
			&r.WordCount, &quality, &language, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		r.ErrorType = errorType.String
		r.Title = title.String
		r.Quality = models.QualityLabel(quality.String)
		r.Language = language.String
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// QualityBreakdown counts successful analyses per quality label.
func (db *DB) QualityBreakdown() (map[models.QualityLabel]int, error) {
	rows, err := db.Query(`
		SELECT quality, COUNT(*)
		FROM analyses
		WHERE status = ? AND quality IS NOT NULL
		GROUP BY quality
	`, models.StatusSuccess)
	if err != nil {
		return nil, fmt.Errorf("failed to query quality breakdown: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.QualityLabel]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan quality count: %w", err)
		}
		counts[models.QualityLabel(label)] = n
	}
	return counts, rows.Err()
}

// CountAnalyses returns the total number of stored analyses.
func (db *DB) CountAnalyses() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM analyses").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return n, nil
}

// DeleteOlderThan removes analyses older than the given age, along
// with their similar-page rows, and reports how many were deleted.
func (db *DB) DeleteOlderThan(age time.Duration) (int64, error) {
	modifier := fmt.Sprintf("-%d seconds", int64(age.Seconds()))
	res, err := db.Exec("DELETE FROM analyses WHERE created_at < datetime('now', ?)", modifier)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old analyses: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted analyses: %w", err)
	}
	return n, nil
}

// nullString maps empty strings to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
