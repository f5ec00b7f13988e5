package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HeliTourService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"booking_number",
	"customer_id",
	"course_id",
	"slot_id",
	"reservation_date",
	"reservation_time",
	"pax",
	"subtotal",
	"tax",
	"total_price",
	"status",
	"payment_status",
	"payment_id",
	"cancelled_at",
	"cancelled_by",
	"cancellation_reason",
	"cancellation_fee",
	"created_at",
	"updated_at",
}

// CancelParams поля, проставляемые при отмене
type CancelParams struct {
	CancelledAt time.Time
	CancelledBy string
	Reason      *string
	Fee         int64
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается в одной транзакции с резервированием мест в слоте
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"booking_number",
			"customer_id",
			"course_id",
			"slot_id",
			"reservation_date",
			"reservation_time",
			"pax",
			"subtotal",
			"tax",
			"total_price",
			"status",
			"payment_status",
			"payment_id",
		).
		Values(
			res.ID,
			res.BookingNumber,
			res.CustomerID,
			res.CourseID,
			res.SlotID,
			res.ReservationDate,
			res.ReservationTime,
			res.Pax,
			res.Subtotal,
			res.Tax,
			res.TotalPrice,
			res.Status,
			res.PaymentStatus,
			res.PaymentID,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation && strings.Contains(pqErr.Constraint, "booking_number") {
		return nil, ErrDuplicateBookingNumber
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки до конца транзакции
// Вне транзакции работает как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where("id = ?", id)

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Cancel отменяет бронирование, только если оно еще в статусе pending или confirmed.
// Повторная (параллельная) отмена получает ErrConditionNotMet и не освобождает места дважды
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, params CancelParams) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.ReservationStatusCancelled).
		Set("cancelled_at", params.CancelledAt).
		Set("cancelled_by", params.CancelledBy).
		Set("cancellation_reason", params.Reason).
		Set("cancellation_fee", params.Fee).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where(squirrel.Eq{"status": []string{
			string(domain.ReservationStatusPending),
			string(domain.ReservationStatusConfirmed),
		}}).
		Suffix("RETURNING " + strings.Join(reservationColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConditionNotMet
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return res, nil
}

// UpdatePaymentStatus обновляет статус оплаты бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление, только для администратора)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where("id = ?", id).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует строку в порядке reservationColumns
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.BookingNumber,
		&res.CustomerID,
		&res.CourseID,
		&res.SlotID,
		&res.ReservationDate,
		&res.ReservationTime,
		&res.Pax,
		&res.Subtotal,
		&res.Tax,
		&res.TotalPrice,
		&res.Status,
		&res.PaymentStatus,
		&res.PaymentID,
		&res.CancelledAt,
		&res.CancelledBy,
		&res.CancellationReason,
		&res.CancellationFee,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}
