package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Ate-lier/microservice-questions/internal/models"
)

// CreateQuestionParams holds the caller-supplied fields of a new question.
// date_written, reported and helpful are assigned here, not by the caller.
type CreateQuestionParams struct {
	ProductID  int64
	Body       string
	AskerName  string
	AskerEmail string
}

type QuestionRepository interface {
	Create(ctx context.Context, params CreateQuestionParams) (int64, error)
	Read(ctx context.Context, id int64) (*models.Question, error)
	List(ctx context.Context, productID int64, sortBy string, page, limit int32) ([]*models.Question, error)
	Count(ctx context.Context, productID int64) (int64, error)
	UpdateHelpful(ctx context.Context, id int64, isUpvote bool) error
	UpdateReported(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type questionRepository struct {
	db DBTX
}

func NewQuestionRepository(db DBTX) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, params CreateQuestionParams) (int64, error) {
	query := `
		INSERT INTO questions (product_id, body, date_written, asker_name, asker_email, reported, helpful)
		VALUES (?, ?, ?, ?, ?, 0, 0)
	`
	result, err := r.db.ExecContext(ctx, query,
		params.ProductID, params.Body, time.Now().UnixMilli(), params.AskerName, params.AskerEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to create question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get question ID: %w", err)
	}
	return id, nil
}

func (r *questionRepository) Read(ctx context.Context, id int64) (*models.Question, error) {
	query := `
		SELECT id, product_id, body, date_written, asker_name, asker_email, reported, helpful
		FROM questions
		WHERE id = ?
	`
	var question models.Question
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&question.ID,
		&question.ProductID,
		&question.Body,
		&question.DateWritten,
		&question.AskerName,
		&question.AskerEmail,
		&question.Reported,
		&question.Helpful,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read question: %w", err)
	}
	return &question, nil
}

func (r *questionRepository) List(ctx context.Context, productID int64, sortBy string, page, limit int32) ([]*models.Question, error) {
	query := fmt.Sprintf(`
		SELECT id, product_id, body, date_written, asker_name, asker_email, reported, helpful
		FROM questions
		WHERE product_id = ?
		ORDER BY %s DESC
		LIMIT ? OFFSET ?
	`, orderColumn(sortBy))

	offset := (page - 1) * limit
	rows, err := r.db.QueryContext(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		var question models.Question
		if err := rows.Scan(
			&question.ID,
			&question.ProductID,
			&question.Body,
			&question.DateWritten,
			&question.AskerName,
			&question.AskerEmail,
			&question.Reported,
			&question.Helpful,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) Count(ctx context.Context, productID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM questions WHERE product_id = ?`

	var total int64
	if err := r.db.QueryRowContext(ctx, query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return total, nil
}

func (r *questionRepository) UpdateHelpful(ctx context.Context, id int64, isUpvote bool) error {
	// Single-statement delta so concurrent votes cannot lose updates
	query := `UPDATE questions SET helpful = helpful + ? WHERE id = ?`

	delta := 1
	if !isUpvote {
		delta = -1
	}

	result, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to update question helpful: %w", err)
	}
	return checkAffected(result)
}

func (r *questionRepository) UpdateReported(ctx context.Context, id int64) error {
	query := `UPDATE questions SET reported = reported + 1 WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to report question: %w", err)
	}
	return checkAffected(result)
}

func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	// Answers and their photos go with it via ON DELETE CASCADE
	query := `DELETE FROM questions WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
