package dao

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create GORM instance: %v", err)
	}

	return gormDB, mock
}

func TestEventDAO_IncrementRegistrationCount(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	dao := NewEventDAO(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "events" SET "registration_count"=registration_count \+ \$1 WHERE id = \$2`).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := dao.IncrementRegistrationCount(context.Background(), 42, 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventDAO_SaveLifecycle_MissingRow(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	dao := NewEventDAO(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "events" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := dao.SaveLifecycle(context.Background(), Event{ID: 999, Status: "PUBLISHED"})

	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventDAO_CountLikes(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	dao := NewEventDAO(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "event_likes"`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := dao.CountLikes(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
