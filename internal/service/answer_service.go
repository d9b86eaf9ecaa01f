package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ate-lier/microservice-questions/internal/models"
	"github.com/Ate-lier/microservice-questions/internal/repository"
)

// AnswerPage is one page of answers, each with its photos attached, plus the
// unpaginated total.
type AnswerPage struct {
	Answers []*models.Answer
	Total   int64
}

type AnswerService struct {
	db      *sql.DB
	answers repository.AnswerRepository
	photos  repository.PhotoRepository
}

// NewAnswerService keeps a handle on the pool itself because answer creation
// is a multi-statement write that must run on one pinned connection.
func NewAnswerService(db *sql.DB, answers repository.AnswerRepository, photos repository.PhotoRepository) *AnswerService {
	return &AnswerService{db: db, answers: answers, photos: photos}
}

// List returns one sorted page of answers for a question with the total
// count. Photos for the whole page are fetched in a single batched query.
func (s *AnswerService) List(ctx context.Context, questionID int64, sortBy string, page, limit int32) (*AnswerPage, error) {
	sortBy, page, limit = applyListDefaults(sortBy, page, limit)

	answers, err := s.answers.List(ctx, questionID, sortBy, page, limit)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []*models.Answer{}
	}

	total, err := s.answers.Count(ctx, questionID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(answers))
	for _, answer := range answers {
		ids = append(ids, answer.ID)
	}

	photos, err := s.photos.ReadForAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, answer := range answers {
		answer.Photos = photos[answer.ID]
		if answer.Photos == nil {
			answer.Photos = []string{}
		}
	}

	return &AnswerPage{Answers: answers, Total: total}, nil
}

// Create inserts the answer and its photos atomically. The transaction pins
// one pooled connection for its duration; the deferred rollback is a no-op
// after a successful commit and releases the connection on every path.
func (s *AnswerService) Create(ctx context.Context, params repository.CreateAnswerParams, photoURLs []string) (*models.Answer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	answers := repository.NewAnswerRepository(tx)
	photos := repository.NewPhotoRepository(tx)

	id, err := answers.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	answer, err := answers.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, fmt.Errorf("inserted answer %d not found on read-back", id)
	}
	answer.Photos = []string{}

	if len(photoURLs) > 0 {
		affected, err := photos.Create(ctx, id, photoURLs)
		if err != nil {
			return nil, err
		}
		if affected != int64(len(photoURLs)) {
			return nil, fmt.Errorf("photo insert affected %d of %d rows", affected, len(photoURLs))
		}
		answer.Photos = photoURLs
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return answer, nil
}

func (s *AnswerService) Delete(ctx context.Context, id int64) error {
	return s.answers.Delete(ctx, id)
}

// Like applies a +1 helpful delta and returns the updated row.
func (s *AnswerService) Like(ctx context.Context, id int64) (*models.Answer, error) {
	return s.vote(ctx, id, true)
}

// Unlike applies a -1 helpful delta and returns the updated row.
func (s *AnswerService) Unlike(ctx context.Context, id int64) (*models.Answer, error) {
	return s.vote(ctx, id, false)
}

func (s *AnswerService) vote(ctx context.Context, id int64, isUpvote bool) (*models.Answer, error) {
	if err := s.answers.UpdateHelpful(ctx, id, isUpvote); err != nil {
		return nil, err
	}
	return s.readUpdated(ctx, id)
}

// Report increments the reported counter and returns the updated row.
func (s *AnswerService) Report(ctx context.Context, id int64) (*models.Answer, error) {
	if err := s.answers.UpdateReported(ctx, id); err != nil {
		return nil, err
	}
	return s.readUpdated(ctx, id)
}

func (s *AnswerService) readUpdated(ctx context.Context, id int64) (*models.Answer, error) {
	answer, err := s.answers.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, repository.ErrNotFound
	}

	urls, err := s.photos.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	answer.Photos = urls

	return answer, nil
}
