package reservation

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/pkg/dbmetrics"
)

func newReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              uuid.New(),
		BookingNumber:   "HT-20240615-1A2B3C",
		CustomerID:      "cus-1",
		CourseID:        uuid.New(),
		SlotID:          uuid.New(),
		ReservationDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		ReservationTime: "09:00",
		Pax:             2,
		Subtotal:        100000,
		Tax:             10000,
		TotalPrice:      110000,
		Status:          domain.ReservationStatusConfirmed,
		PaymentStatus:   domain.PaymentStatusUnpaid,
	}
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	res := newReservation()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateBookingNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "reservations_booking_number_key"})

	_, err = repo.Create(context.Background(), newReservation())
	assert.ErrorIs(t, err, ErrDuplicateBookingNumber)
}

func TestRepository_Cancel_AlreadyCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reservations SET status = $1")).
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	_, err = repo.Cancel(context.Background(), uuid.New(), CancelParams{
		CancelledAt: time.Now(),
		CancelledBy: "cus-1",
		Fee:         55000,
	})
	assert.ErrorIs(t, err, ErrConditionNotMet)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByIDForUpdate_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	ctx := dbmetrics.WithTx(context.Background(), tx)
	_, err = repo.GetByIDForUpdate(ctx, id)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM reservations").WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
