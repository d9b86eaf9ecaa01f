package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPhotoRepository(db)
	ctx := context.Background()

	t.Run("BulkInsert", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO answers_photos \\(answer_id, url\\) VALUES \\(\\?, \\?\\), \\(\\?, \\?\\)").
			WithArgs(int64(3), "https://cdn.example.com/a.jpg", int64(3), "https://cdn.example.com/b.jpg").
			WillReturnResult(sqlmock.NewResult(0, 2))

		affected, err := repo.Create(ctx, 3, []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)
	})

	t.Run("NoURLsIsNoOp", func(t *testing.T) {
		affected, err := repo.Create(ctx, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepository_Read(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPhotoRepository(db)
	ctx := context.Background()

	t.Run("WithPhotos", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"url"}).
			AddRow("https://cdn.example.com/a.jpg").
			AddRow("https://cdn.example.com/b.jpg")

		mock.ExpectQuery("SELECT url FROM answers_photos WHERE answer_id").
			WithArgs(int64(3)).
			WillReturnRows(rows)

		urls, err := repo.Read(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, urls)
	})

	t.Run("NoPhotosReadsAsEmptySlice", func(t *testing.T) {
		mock.ExpectQuery("SELECT url FROM answers_photos WHERE answer_id").
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"url"}))

		urls, err := repo.Read(ctx, 9)
		require.NoError(t, err)
		require.NotNil(t, urls)
		assert.Len(t, urls, 0)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepository_ReadForAnswers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPhotoRepository(db)
	ctx := context.Background()

	t.Run("OneQueryForWholePage", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"answer_id", "url"}).
			AddRow(1, "https://cdn.example.com/a.jpg").
			AddRow(1, "https://cdn.example.com/b.jpg").
			AddRow(3, "https://cdn.example.com/c.jpg")

		mock.ExpectQuery("SELECT answer_id, url FROM answers_photos WHERE answer_id IN \\(\\?, \\?, \\?\\)").
			WithArgs(int64(1), int64(2), int64(3)).
			WillReturnRows(rows)

		photos, err := repo.ReadForAnswers(ctx, []int64{1, 2, 3})
		require.NoError(t, err)
		assert.Len(t, photos[1], 2)
		assert.Len(t, photos[3], 1)
		// Answers without photos still map to an empty slice
		require.NotNil(t, photos[2])
		assert.Len(t, photos[2], 0)
	})

	t.Run("EmptyInputSkipsQuery", func(t *testing.T) {
		photos, err := repo.ReadForAnswers(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, photos)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
