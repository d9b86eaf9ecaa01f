package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ate-lier/microservice-questions/internal/models"
	"github.com/Ate-lier/microservice-questions/internal/repository"
	"github.com/Ate-lier/microservice-questions/internal/service"
	"github.com/Ate-lier/microservice-questions/pkg/helpers"
	"github.com/Ate-lier/microservice-questions/pkg/logger"
)

type QuestionHandler struct {
	questions *service.QuestionService
	validate  *helpers.CustomValidator
	log       *logger.Logger
}

func NewQuestionHandler(questions *service.QuestionService, validate *helpers.CustomValidator, log *logger.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, validate: validate, log: log}
}

type createQuestionRequest struct {
	ProductID  int64  `json:"product_id" validate:"required,min=1"`
	Body       string `json:"body" validate:"required,min=10,max=255"`
	AskerName  string `json:"asker_name" validate:"required,min=3,max=255"`
	AskerEmail string `json:"asker_email" validate:"required,email,max=255"`
}

type listQuestionsQuery struct {
	ProductID   int64  `json:"product_id" validate:"required,min=1"`
	SortBy      string `json:"sortBy" validate:"omitempty,oneof=helpful date_written"`
	CurrentPage int32  `json:"currentPage" validate:"omitempty,min=1"`
	PageLimit   int32  `json:"pageLimit" validate:"omitempty,min=1,max=5"`
}

// Collection handles GET /questions and POST /questions
func (h *QuestionHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, ErrorTypeServer, "method not allowed")
	}
}

// list handles GET /questions?product_id=&sortBy=&currentPage=&pageLimit=
func (h *QuestionHandler) list(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var query listQuestionsQuery
	query.SortBy = params.Get("sortBy")

	if v := params.Get("product_id"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "The product_id field must be an integer")
			return
		}
		query.ProductID = parsed
	}
	if v := params.Get("currentPage"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "The currentPage field must be an integer")
			return
		}
		query.CurrentPage = int32(parsed)
	}
	if v := params.Get("pageLimit"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "The pageLimit field must be an integer")
			return
		}
		query.PageLimit = int32(parsed)
	}

	if err := h.validate.Validate(query); err != nil {
		writeValidationError(w, err)
		return
	}

	page, err := h.questions.List(r.Context(), query.ProductID, query.SortBy, query.CurrentPage, query.PageLimit)
	if err != nil {
		h.log.WithError(err).Error("Failed to list questions")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions":      page.Questions,
		"questionsCount": page.Total,
	})
}

// create handles POST /questions
func (h *QuestionHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "Invalid JSON body")
		return
	}

	if err := h.validate.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	question, err := h.questions.Create(r.Context(), repository.CreateQuestionParams{
		ProductID:  req.ProductID,
		Body:       req.Body,
		AskerName:  req.AskerName,
		AskerEmail: req.AskerEmail,
	})
	if err != nil {
		h.log.WithError(err).Error("Failed to create question")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"question": []*models.Question{question},
	})
}

// Item handles DELETE /questions/{question_id} and
// PATCH /questions/{question_id}/{like|unlike|report}
func (h *QuestionHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/questions/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id < 1 {
		writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "The question_id field must be an integer of at least 1")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.delete(w, r, id)
	case len(parts) == 2 && r.Method == http.MethodPatch:
		h.patch(w, r, id, parts[1])
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, ErrorTypeServer, "method not allowed")
	}
}

func (h *QuestionHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.questions.Delete(r.Context(), id); err != nil {
		h.log.WithError(err).WithField("question_id", id).Error("Failed to delete question")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuestionHandler) patch(w http.ResponseWriter, r *http.Request, id int64, action string) {
	var (
		question *models.Question
		err      error
	)

	switch action {
	case "like":
		question, err = h.questions.Like(r.Context(), id)
	case "unlike":
		question, err = h.questions.Unlike(r.Context(), id)
	case "report":
		question, err = h.questions.Report(r.Context(), id)
	default:
		writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "Unknown question action: "+action)
		return
	}

	if err != nil {
		h.log.WithError(err).WithField("question_id", id).Error("Failed to update question")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question": []*models.Question{question},
	})
}
