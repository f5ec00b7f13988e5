package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HeliTourService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"course_id",
	"date",
	"time",
	"max_pax",
	"current_pax",
	"status",
	"suspended_reason",
	"created_at",
	"updated_at",
}

// returningSlot суффикс для UPDATE ... RETURNING, совпадает с порядком slotColumns
const returningSlot = "RETURNING id, course_id, date, time, max_pax, current_pax, status, suspended_reason, created_at, updated_at"

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where("id = ?", id).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// List получает слоты в диапазоне дат (включительно)
// Используется как единственный запрос существующих слотов при генерации
func (r *Repository) List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.GtOrEq{"date": filter.StartDate}).
		Where(squirrel.LtOrEq{"date": filter.EndDate})

	// Фильтрация по курсу
	if filter.UnassignedOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"course_id": nil})
	} else if filter.CourseID != nil {
		selectBuilder = selectBuilder.Where("course_id = ?", *filter.CourseID)
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.OrderBy("date ASC", "time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// IncrementPax атомарно увеличивает current_pax одним условным UPDATE:
// только если слот открыт и current_pax + pax <= max_pax.
// Возвращает ErrConditionNotMet, если условие не выполнено (в том числе если слота нет)
func (r *Repository) IncrementPax(ctx context.Context, id uuid.UUID, pax int) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_pax", squirrel.Expr("current_pax + ?", pax)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where(squirrel.Eq{"status": domain.SlotStatusOpen}).
		Where(squirrel.Expr("current_pax + ? <= max_pax", pax)).
		Suffix(returningSlot).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: IncrementPax - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConditionNotMet
	}
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementPax - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// DecrementPax атомарно уменьшает current_pax, только если current_pax >= pax.
// Статус слота не проверяется: места освобождаются и в закрытом, и в приостановленном слоте
func (r *Repository) DecrementPax(ctx context.Context, id uuid.UUID, pax int) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_pax", squirrel.Expr("current_pax - ?", pax)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where(squirrel.GtOrEq{"current_pax": pax}).
		Suffix(returningSlot).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DecrementPax - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConditionNotMet
	}
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementPax - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// ResetPax обнуляет current_pax (используется, когда освобождение ушло бы в минус)
func (r *Repository) ResetPax(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_pax", 0).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Suffix(returningSlot).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ResetPax - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ResetPax - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// UpdateStatus меняет статус слота, только если текущий статус равен from.
// reason сохраняется только для suspended, для остальных статусов очищается
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.SlotStatus, reason *string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if to != domain.SlotStatusSuspended {
		reason = nil
	}

	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("suspended_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where(squirrel.Eq{"status": from}).
		Suffix(returningSlot).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConditionNotMet
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// CreateBatch вставляет слоты одним многострочным INSERT.
// Конфликты уникальности (слот уже создан параллельной генерацией) пропускаются,
// возвращается число реально вставленных строк
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("id", "course_id", "date", "time", "max_pax", "current_pax", "status")

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(s.ID, s.CourseID, s.Date, s.Time, s.MaxPax, s.CurrentPax, s.Status)
	}

	query, args, err := insertBuilder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return inserted, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует строку в порядке slotColumns
func scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.CourseID,
		&slot.Date,
		&slot.Time,
		&slot.MaxPax,
		&slot.CurrentPax,
		&slot.Status,
		&slot.SuspendedReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
