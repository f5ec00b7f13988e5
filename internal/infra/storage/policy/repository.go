package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HeliTourService/pkg/psqlbuilder"
)

// Repository репозиторий таблицы политики отмены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики отмены
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive получает активные уровни политики в порядке отображения
func (r *Repository) ListActive(ctx context.Context) ([]domain.CancellationPolicyTier, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"days_before",
		"fee_percentage",
		"display_order",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("cancellation_policy_tiers").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("display_order ASC", "days_before ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tiers := make([]domain.CancellationPolicyTier, 0)
	for rows.Next() {
		var tier domain.CancellationPolicyTier
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&tier.ID,
			&tier.DaysBefore,
			&tier.FeePercentage,
			&tier.DisplayOrder,
			&tier.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}

		tier.CreatedAt = createdAt.Time
		tier.UpdatedAt = updatedAt.Time
		tiers = append(tiers, tier)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return tiers, nil
}
