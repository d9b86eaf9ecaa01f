package service

import (
	"context"
	"fmt"

	"github.com/Ate-lier/microservice-questions/internal/models"
	"github.com/Ate-lier/microservice-questions/internal/repository"
)

// Pagination defaults applied when the client omits the query parameters.
const (
	DefaultSortBy    = repository.SortByHelpful
	DefaultPage      = int32(1)
	DefaultPageLimit = int32(5)
)

// QuestionPage is one page of questions plus the unpaginated total, which
// clients use to compute the page count.
type QuestionPage struct {
	Questions []*models.Question
	Total     int64
}

type QuestionService struct {
	questions repository.QuestionRepository
}

func NewQuestionService(questions repository.QuestionRepository) *QuestionService {
	return &QuestionService{questions: questions}
}

// List returns one sorted page of questions for a product and the total
// match count. Zero values for sortBy, page and limit take the defaults.
func (s *QuestionService) List(ctx context.Context, productID int64, sortBy string, page, limit int32) (*QuestionPage, error) {
	sortBy, page, limit = applyListDefaults(sortBy, page, limit)

	questions, err := s.questions.List(ctx, productID, sortBy, page, limit)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []*models.Question{}
	}

	total, err := s.questions.Count(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{Questions: questions, Total: total}, nil
}

// Create inserts the question and reads the stored row back so the response
// carries the server-assigned id, timestamp and zeroed counters.
func (s *QuestionService) Create(ctx context.Context, params repository.CreateQuestionParams) (*models.Question, error) {
	id, err := s.questions.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, fmt.Errorf("inserted question %d not found on read-back", id)
	}
	return question, nil
}

func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	return s.questions.Delete(ctx, id)
}

// Like applies a +1 helpful delta and returns the updated row.
func (s *QuestionService) Like(ctx context.Context, id int64) (*models.Question, error) {
	return s.vote(ctx, id, true)
}

// Unlike applies a -1 helpful delta and returns the updated row. There is no
// floor; repeated unlikes can drive helpful negative.
func (s *QuestionService) Unlike(ctx context.Context, id int64) (*models.Question, error) {
	return s.vote(ctx, id, false)
}

func (s *QuestionService) vote(ctx context.Context, id int64, isUpvote bool) (*models.Question, error) {
	if err := s.questions.UpdateHelpful(ctx, id, isUpvote); err != nil {
		return nil, err
	}
	return s.readUpdated(ctx, id)
}

// Report increments the reported counter and returns the updated row.
func (s *QuestionService) Report(ctx context.Context, id int64) (*models.Question, error) {
	if err := s.questions.UpdateReported(ctx, id); err != nil {
		return nil, err
	}
	return s.readUpdated(ctx, id)
}

func (s *QuestionService) readUpdated(ctx context.Context, id int64) (*models.Question, error) {
	question, err := s.questions.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		// Deleted between the update and the read-back
		return nil, repository.ErrNotFound
	}
	return question, nil
}

func applyListDefaults(sortBy string, page, limit int32) (string, int32, int32) {
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return sortBy, page, limit
}
