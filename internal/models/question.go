package models

// Question is a row of the questions table. DateWritten is a Unix
// millisecond timestamp, matching the BIGINT column.
type Question struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	Body        string `json:"body"`
	DateWritten int64  `json:"date_written"`
	AskerName   string `json:"asker_name"`
	AskerEmail  string `json:"asker_email"`
	Reported    int32  `json:"reported"`
	Helpful     int32  `json:"helpful"`
}
