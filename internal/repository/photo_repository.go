package repository

import (
	"context"
	"fmt"
	"strings"
)

type PhotoRepository interface {
	Create(ctx context.Context, answerID int64, urls []string) (int64, error)
	Read(ctx context.Context, answerID int64) ([]string, error)
	ReadForAnswers(ctx context.Context, answerIDs []int64) (map[int64][]string, error)
}

type photoRepository struct {
	db DBTX
}

func NewPhotoRepository(db DBTX) PhotoRepository {
	return &photoRepository{db: db}
}

// Create bulk-inserts one row per URL and returns the affected-row count.
func (r *photoRepository) Create(ctx context.Context, answerID int64, urls []string) (int64, error) {
	if len(urls) == 0 {
		return 0, nil
	}

	placeholders := make([]string, 0, len(urls))
	args := make([]interface{}, 0, len(urls)*2)
	for _, url := range urls {
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, answerID, url)
	}

	query := fmt.Sprintf(`INSERT INTO answers_photos (answer_id, url) VALUES %s`,
		strings.Join(placeholders, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to create photos: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected, nil
}

// Read returns all photo URLs for an answer. The result is never nil: an
// answer without photos reads as an empty slice.
func (r *photoRepository) Read(ctx context.Context, answerID int64) ([]string, error) {
	query := `SELECT url FROM answers_photos WHERE answer_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, answerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read photos: %w", err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}
	return urls, nil
}

// ReadForAnswers fetches photos for a whole page of answers in one query.
// Every requested answer ID is present in the result, mapped to an empty
// slice when it has no photos.
func (r *photoRepository) ReadForAnswers(ctx context.Context, answerIDs []int64) (map[int64][]string, error) {
	photos := make(map[int64][]string, len(answerIDs))
	for _, id := range answerIDs {
		photos[id] = []string{}
	}
	if len(answerIDs) == 0 {
		return photos, nil
	}

	placeholders := make([]string, 0, len(answerIDs))
	args := make([]interface{}, 0, len(answerIDs))
	for _, id := range answerIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT answer_id, url
		FROM answers_photos
		WHERE answer_id IN (%s)
		ORDER BY id
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read photos for answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var answerID int64
		var url string
		if err := rows.Scan(&answerID, &url); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos[answerID] = append(photos[answerID], url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}
	return photos, nil
}
