package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

func TestMemberRepository_Get_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "board_members" WHERE board_id = .* AND user_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "user_id", "role", "added_at"}))

	member, err := repo.Get(context.Background(), uuid.New(), uuid.New())

	assert.Nil(t, member)
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_UpdateRole(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	boardID, userID := uuid.New(), uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "board_members" SET "role"=\$1 WHERE board_id = \$2 AND user_id = \$3`).
		WithArgs(model.RoleEditor, boardID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateRole(context.Background(), boardID, userID, model.RoleEditor)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_Remove_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMemberRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "board_members" WHERE board_id = \$1 AND user_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Remove(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
