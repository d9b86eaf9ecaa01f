package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ate-lier/microservice-questions/internal/repository"
)

func answerColumns() []string {
	return []string{"id", "question_id", "body", "date_written", "answerer_name", "answerer_email", "reported", "helpful"}
}

func newAnswerService(t *testing.T) (*AnswerService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	svc := NewAnswerService(db,
		repository.NewAnswerRepository(db),
		repository.NewPhotoRepository(db))
	return svc, mock, func() { db.Close() }
}

func TestAnswerService_Create(t *testing.T) {
	ctx := context.Background()

	params := repository.CreateAnswerParams{
		QuestionID:    7,
		Body:          "this answer is long enough",
		AnswererName:  "Carol",
		AnswererEmail: "carol@example.com",
	}

	t.Run("WithPhotosCommitsBoth", func(t *testing.T) {
		svc, mock, closeDB := newAnswerService(t)
		defer closeDB()

		urls := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO answers \\(question_id").
			WithArgs(int64(7), params.Body, sqlmock.AnyArg(), params.AnswererName, params.AnswererEmail).
			WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectQuery("SELECT (.+) FROM answers WHERE id").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(answerColumns()).
				AddRow(3, 7, params.Body, 1700000000000, params.AnswererName, params.AnswererEmail, 0, 0))
		mock.ExpectExec("INSERT INTO answers_photos").
			WithArgs(int64(3), urls[0], int64(3), urls[1]).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		answer, err := svc.Create(ctx, params, urls)
		require.NoError(t, err)
		assert.Equal(t, int64(3), answer.ID)
		assert.Equal(t, urls, answer.Photos)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WithoutPhotos", func(t *testing.T) {
		svc, mock, closeDB := newAnswerService(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO answers \\(question_id").
			WithArgs(int64(7), params.Body, sqlmock.AnyArg(), params.AnswererName, params.AnswererEmail).
			WillReturnResult(sqlmock.NewResult(4, 1))
		mock.ExpectQuery("SELECT (.+) FROM answers WHERE id").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(answerColumns()).
				AddRow(4, 7, params.Body, 1700000000000, params.AnswererName, params.AnswererEmail, 0, 0))
		mock.ExpectCommit()

		answer, err := svc.Create(ctx, params, nil)
		require.NoError(t, err)
		require.NotNil(t, answer.Photos)
		assert.Len(t, answer.Photos, 0)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PhotoInsertMismatchRollsBack", func(t *testing.T) {
		svc, mock, closeDB := newAnswerService(t)
		defer closeDB()

		urls := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO answers \\(question_id").
			WithArgs(int64(7), params.Body, sqlmock.AnyArg(), params.AnswererName, params.AnswererEmail).
			WillReturnResult(sqlmock.NewResult(5, 1))
		mock.ExpectQuery("SELECT (.+) FROM answers WHERE id").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(answerColumns()).
				AddRow(5, 7, params.Body, 1700000000000, params.AnswererName, params.AnswererEmail, 0, 0))
		mock.ExpectExec("INSERT INTO answers_photos").
			WithArgs(int64(5), urls[0], int64(5), urls[1]).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		_, err := svc.Create(ctx, params, urls)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "photo insert affected")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AnswerInsertFailureRollsBack", func(t *testing.T) {
		svc, mock, closeDB := newAnswerService(t)
		defer closeDB()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO answers \\(question_id").
			WithArgs(int64(7), params.Body, sqlmock.AnyArg(), params.AnswererName, params.AnswererEmail).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err := svc.Create(ctx, params, nil)
		require.Error(t, err)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAnswerService_List(t *testing.T) {
	svc, mock, closeDB := newAnswerService(t)
	defer closeDB()
	ctx := context.Background()

	t.Run("PhotosBatchedInOneQuery", func(t *testing.T) {
		rows := sqlmock.NewRows(answerColumns()).
			AddRow(1, 7, "first answer body is here", 1700000000000, "Carol", "carol@example.com", 0, 5).
			AddRow(2, 7, "second answer body is here", 1700000000001, "Dave", "dave@example.com", 0, 2)

		mock.ExpectQuery("SELECT (.+) FROM answers WHERE question_id = \\? ORDER BY helpful DESC").
			WithArgs(int64(7), int32(5), int32(0)).
			WillReturnRows(rows)
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM answers").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
		mock.ExpectQuery("SELECT answer_id, url FROM answers_photos WHERE answer_id IN \\(\\?, \\?\\)").
			WithArgs(int64(1), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"answer_id", "url"}).
				AddRow(1, "https://cdn.example.com/a.jpg"))

		page, err := svc.List(ctx, 7, "", 0, 0)
		require.NoError(t, err)
		require.Len(t, page.Answers, 2)
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, page.Answers[0].Photos)
		require.NotNil(t, page.Answers[1].Photos)
		assert.Len(t, page.Answers[1].Photos, 0)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("EmptyPageSkipsPhotoQuery", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM answers WHERE question_id").
			WithArgs(int64(9), int32(5), int32(0)).
			WillReturnRows(sqlmock.NewRows(answerColumns()))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM answers").
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))

		page, err := svc.List(ctx, 9, "", 0, 0)
		require.NoError(t, err)
		require.NotNil(t, page.Answers)
		assert.Len(t, page.Answers, 0)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerService_Vote(t *testing.T) {
	svc, mock, closeDB := newAnswerService(t)
	defer closeDB()
	ctx := context.Background()

	t.Run("LikeThenReadBackWithPhotos", func(t *testing.T) {
		mock.ExpectExec("UPDATE answers SET helpful = helpful \\+ \\?").
			WithArgs(1, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM answers WHERE id").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(answerColumns()).
				AddRow(3, 7, "this answer is long enough", 1700000000000, "Carol", "carol@example.com", 0, 3))
		mock.ExpectQuery("SELECT url FROM answers_photos WHERE answer_id").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"url"}).
				AddRow("https://cdn.example.com/a.jpg"))

		answer, err := svc.Like(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, int32(3), answer.Helpful)
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, answer.Photos)
	})

	t.Run("MissingAnswer", func(t *testing.T) {
		mock.ExpectExec("UPDATE answers SET helpful = helpful \\+ \\?").
			WithArgs(-1, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := svc.Unlike(ctx, 404)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
