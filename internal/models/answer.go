package models

// Answer is a row of the answers table. Photos is assembled by the service
// layer from answers_photos; it is always non-nil on responses, possibly
// empty.
type Answer struct {
	ID            int64    `json:"id"`
	QuestionID    int64    `json:"question_id"`
	Body          string   `json:"body"`
	DateWritten   int64    `json:"date_written"`
	AnswererName  string   `json:"answerer_name"`
	AnswererEmail string   `json:"answerer_email"`
	Reported      int32    `json:"reported"`
	Helpful       int32    `json:"helpful"`
	Photos        []string `json:"photos"`
}
