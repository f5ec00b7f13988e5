package refund

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HeliTourService/pkg/psqlbuilder"
)

// ResultParams результат обработки возврата платежным шлюзом
type ResultParams struct {
	Status         domain.RefundStatus
	StripeRefundID *string
	FailureReason  *string
	ProcessedAt    time.Time
	ProcessedBy    string
}

// Repository репозиторий возвратов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория возвратов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет возврат в статусе pending до обращения к платежному шлюзу
func (r *Repository) Create(ctx context.Context, refund *domain.Refund) (*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("refunds").
		Columns("id", "reservation_id", "payment_id", "amount", "reason", "reason_detail", "status", "processed_by").
		Values(
			refund.ID,
			refund.ReservationID,
			refund.PaymentID,
			refund.Amount,
			refund.Reason,
			refund.ReasonDetail,
			refund.Status,
			refund.ProcessedBy,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&refund.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return refund, nil
}

// SaveResult фиксирует ответ платежного шлюза
func (r *Repository) SaveResult(ctx context.Context, id uuid.UUID, params ResultParams) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("refunds").
		Set("status", params.Status).
		Set("stripe_refund_id", params.StripeRefundID).
		Set("failure_reason", params.FailureReason).
		Set("processed_at", params.ProcessedAt).
		Set("processed_by", params.ProcessedBy).
		Where("id = ?", id).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveResult - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SaveResult - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SaveResult - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRefundNotFound
	}

	return nil
}

// SumRefunded сумма успешных и ожидающих возвратов по бронированию
// pending учитывается, чтобы параллельный возврат не превысил остаток
func (r *Repository) SumRefunded(ctx context.Context, reservationID uuid.UUID) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("refunds").
		Where("reservation_id = ?", reservationID).
		Where("status IN (?, ?)", domain.RefundStatusSucceeded, domain.RefundStatusPending).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumRefunded - build select query: %v", ErrBuildQuery, err)
	}

	var sum sql.NullInt64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumRefunded - scan sum: %v", ErrScanRow, err)
	}

	return sum.Int64, nil
}

// ListByReservation получает возвраты бронирования, новые первыми
func (r *Repository) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"payment_id",
		"amount",
		"reason",
		"reason_detail",
		"stripe_refund_id",
		"status",
		"failure_reason",
		"processed_at",
		"processed_by",
		"created_at",
	).
		From("refunds").
		Where("reservation_id = ?", reservationID).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	refunds := make([]*domain.Refund, 0)
	for rows.Next() {
		var refund domain.Refund
		err := rows.Scan(
			&refund.ID,
			&refund.ReservationID,
			&refund.PaymentID,
			&refund.Amount,
			&refund.Reason,
			&refund.ReasonDetail,
			&refund.StripeRefundID,
			&refund.Status,
			&refund.FailureReason,
			&refund.ProcessedAt,
			&refund.ProcessedBy,
			&refund.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByReservation - scan row: %v", ErrScanRow, err)
		}
		refunds = append(refunds, &refund)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - rows error: %v", ErrScanRow, err)
	}

	return refunds, nil
}
