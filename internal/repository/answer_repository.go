package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Ate-lier/microservice-questions/internal/models"
)

// CreateAnswerParams holds the caller-supplied fields of a new answer.
type CreateAnswerParams struct {
	QuestionID    int64
	Body          string
	AnswererName  string
	AnswererEmail string
}

type AnswerRepository interface {
	Create(ctx context.Context, params CreateAnswerParams) (int64, error)
	Read(ctx context.Context, id int64) (*models.Answer, error)
	List(ctx context.Context, questionID int64, sortBy string, page, limit int32) ([]*models.Answer, error)
	Count(ctx context.Context, questionID int64) (int64, error)
	UpdateHelpful(ctx context.Context, id int64, isUpvote bool) error
	UpdateReported(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type answerRepository struct {
	db DBTX
}

func NewAnswerRepository(db DBTX) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, params CreateAnswerParams) (int64, error) {
	query := `
		INSERT INTO answers (question_id, body, date_written, answerer_name, answerer_email, reported, helpful)
		VALUES (?, ?, ?, ?, ?, 0, 0)
	`
	result, err := r.db.ExecContext(ctx, query,
		params.QuestionID, params.Body, time.Now().UnixMilli(), params.AnswererName, params.AnswererEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to create answer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get answer ID: %w", err)
	}
	return id, nil
}

func (r *answerRepository) Read(ctx context.Context, id int64) (*models.Answer, error) {
	query := `
		SELECT id, question_id, body, date_written, answerer_name, answerer_email, reported, helpful
		FROM answers
		WHERE id = ?
	`
	var answer models.Answer
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&answer.ID,
		&answer.QuestionID,
		&answer.Body,
		&answer.DateWritten,
		&answer.AnswererName,
		&answer.AnswererEmail,
		&answer.Reported,
		&answer.Helpful,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read answer: %w", err)
	}
	return &answer, nil
}

func (r *answerRepository) List(ctx context.Context, questionID int64, sortBy string, page, limit int32) ([]*models.Answer, error) {
	query := fmt.Sprintf(`
		SELECT id, question_id, body, date_written, answerer_name, answerer_email, reported, helpful
		FROM answers
		WHERE question_id = ?
		ORDER BY %s DESC
		LIMIT ? OFFSET ?
	`, orderColumn(sortBy))

	offset := (page - 1) * limit
	rows, err := r.db.QueryContext(ctx, query, questionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	var answers []*models.Answer
	for rows.Next() {
		var answer models.Answer
		if err := rows.Scan(
			&answer.ID,
			&answer.QuestionID,
			&answer.Body,
			&answer.DateWritten,
			&answer.AnswererName,
			&answer.AnswererEmail,
			&answer.Reported,
			&answer.Helpful,
		); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, &answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answers: %w", err)
	}
	return answers, nil
}

func (r *answerRepository) Count(ctx context.Context, questionID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM answers WHERE question_id = ?`

	var total int64
	if err := r.db.QueryRowContext(ctx, query, questionID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count answers: %w", err)
	}
	return total, nil
}

func (r *answerRepository) UpdateHelpful(ctx context.Context, id int64, isUpvote bool) error {
	query := `UPDATE answers SET helpful = helpful + ? WHERE id = ?`

	delta := 1
	if !isUpvote {
		delta = -1
	}

	result, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to update answer helpful: %w", err)
	}
	return checkAffected(result)
}

func (r *answerRepository) UpdateReported(ctx context.Context, id int64) error {
	query := `UPDATE answers SET reported = reported + 1 WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to report answer: %w", err)
	}
	return checkAffected(result)
}

func (r *answerRepository) Delete(ctx context.Context, id int64) error {
	// Photos go with it via ON DELETE CASCADE
	query := `DELETE FROM answers WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	return checkAffected(result)
}
