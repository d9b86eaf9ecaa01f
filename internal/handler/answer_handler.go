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

type AnswerHandler struct {
	answers  *service.AnswerService
	validate *helpers.CustomValidator
	log      *logger.Logger
}

func NewAnswerHandler(answers *service.AnswerService, validate *helpers.CustomValidator, log *logger.Logger) *AnswerHandler {
	return &AnswerHandler{answers: answers, validate: validate, log: log}
}

type createAnswerRequest struct {
	QuestionID    int64    `json:"question_id" validate:"required,min=1"`
	Body          string   `json:"body" validate:"required,min=10,max=255"`
	AnswererName  string   `json:"answerer_name" validate:"required,min=3,max=255"`
	AnswererEmail string   `json:"answerer_email" validate:"required,email,max=255"`
	Photos        []string `json:"photos" validate:"omitempty,max=3,dive,url"`
}

type listAnswersQuery struct {
	QuestionID  int64  `json:"question_id" validate:"required,min=1"`
	SortBy      string `json:"sortBy" validate:"omitempty,oneof=helpful date_written"`
	CurrentPage int32  `json:"currentPage" validate:"omitempty,min=1"`
	PageLimit   int32  `json:"pageLimit" validate:"omitempty,min=1,max=5"`
}

// Collection handles GET /answers and POST /answers
func (h *AnswerHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, ErrorTypeServer, "method not allowed")
	}
}

// list handles GET /answers?question_id=&sortBy=&currentPage=&pageLimit=
func (h *AnswerHandler) list(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var query listAnswersQuery
	query.SortBy = params.Get("sortBy")

	if v := params.Get("question_id"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "The question_id field must be an integer")
			return
		}
		query.QuestionID = parsed
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

	page, err := h.answers.List(r.Context(), query.QuestionID, query.SortBy, query.CurrentPage, query.PageLimit)
	if err != nil {
		h.log.WithError(err).Error("Failed to list answers")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"answers":      page.Answers,
		"answersCount": page.Total,
	})
}

// create handles POST /answers. The answer row and its photo rows are
// written in one transaction; validation rejects more than three photos
// before anything touches the database.
func (h *AnswerHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "Invalid JSON body")
		return
	}

	if err := h.validate.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	answer, err := h.answers.Create(r.Context(), repository.CreateAnswerParams{
		QuestionID:    req.QuestionID,
		Body:          req.Body,
		AnswererName:  req.AnswererName,
		AnswererEmail: req.AnswererEmail,
	}, req.Photos)
	if err != nil {
		h.log.WithError(err).Error("Failed to create answer")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"answer": []*models.Answer{answer},
	})
}

// Item handles DELETE /answers/{answer_id} and
// PATCH /answers/{answer_id}/{like|unlike|report}
func (h *AnswerHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/answers/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id < 1 {
		writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "The answer_id field must be an integer of at least 1")
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

func (h *AnswerHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.answers.Delete(r.Context(), id); err != nil {
		h.log.WithError(err).WithField("answer_id", id).Error("Failed to delete answer")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AnswerHandler) patch(w http.ResponseWriter, r *http.Request, id int64, action string) {
	var (
		answer *models.Answer
		err    error
	)

	switch action {
	case "like":
		answer, err = h.answers.Like(r.Context(), id)
	case "unlike":
		answer, err = h.answers.Unlike(r.Context(), id)
	case "report":
		answer, err = h.answers.Report(r.Context(), id)
	default:
		writeAPIError(w, http.StatusBadRequest, ErrorTypeValidation, "Unknown answer action: "+action)
		return
	}

	if err != nil {
		h.log.WithError(err).WithField("answer_id", id).Error("Failed to update answer")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"answer": []*models.Answer{answer},
	})
}
