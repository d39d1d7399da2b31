package repository

import (
	"context"
	"regexp"
	"testing"

	"warbler/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMessageRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	message := &models.Message{Text: "hello, warbler", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "messages"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, message)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "messages"`)).
		WillReturnError(gorm.ErrRecordNotFound)

	message, err := repo.GetByID(ctx, 99, 0)
	assert.Error(t, err)
	assert.Nil(t, message)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE message_id = $1`)).
			WithArgs(10).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "messages" SET "deleted_at"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 10)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE message_id = $1`)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "messages" SET "deleted_at"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(ctx, 99)
		assert.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMessageRepository_Timeline(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	// One query: own messages plus followees', newest first, bounded.
	rows := sqlmock.NewRows([]string{"id", "text", "user_id"}).
		AddRow(30, "newest", 2).
		AddRow(20, "middle", 1).
		AddRow(10, "oldest", 5)
	mock.ExpectQuery(regexp.QuoteMeta(`messages.user_id = $2 OR messages.user_id IN (SELECT`)).
		WithArgs(1, 1, 1, 100).
		WillReturnRows(rows)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2,$3)`)).
		WithArgs(2, 1, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(1, "finch").
			AddRow(2, "wren").
			AddRow(5, "lark"))

	messages, err := repo.Timeline(ctx, 1, 100)
	assert.NoError(t, err)
	assert.Len(t, messages, 3)
	assert.Equal(t, uint(30), messages[0].ID)
	assert.Equal(t, "wren", messages[0].User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
