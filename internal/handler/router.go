package handler

import "net/http"

// NewRouter wires the question and answer routes onto a mux. Trailing-path
// routes cover the per-entity DELETE and PATCH operations.
func NewRouter(questions *QuestionHandler, answers *AnswerHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/questions", questions.Collection)
	mux.HandleFunc("/questions/", questions.Item)
	mux.HandleFunc("/answers", answers.Collection)
	mux.HandleFunc("/answers/", answers.Item)

	return mux
}
