package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/codebusters-club/recruitment-api/internal/models"
)

func newMockedSlotRepository(t *testing.T) (SlotRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return NewSlotRepository(gdb), mock
}

// The booking write is conditional on is_booked = false. When a concurrent
// booker got there first, zero rows are affected and the transaction rolls
// back without ever touching the application row.
func TestBook_SlotAlreadyTaken(t *testing.T) {
	repo, mock := newMockedSlotRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "interview_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	app := &models.Application{ID: 7, Status: models.StatusInterviewScheduled}
	err := repo.Book(3, app)

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBook_Success(t *testing.T) {
	repo, mock := newMockedSlotRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "interview_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "applications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := &models.Application{ID: 7, Status: models.StatusInterviewScheduled}
	err := repo.Book(3, app)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBook_ApplicationUpdateFailureRollsBack(t *testing.T) {
	repo, mock := newMockedSlotRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "interview_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "applications" SET`).
		WillReturnError(gorm.ErrInvalidData)
	mock.ExpectRollback()

	app := &models.Application{ID: 7, Status: models.StatusInterviewScheduled}
	err := repo.Book(3, app)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
