package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
	"github.com/m04kA/SMC-HeliTourService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HeliTourService/pkg/psqlbuilder"
)

// Repository репозиторий курсов (только чтение, курсы ведет CMS)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория курсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает курс по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price", "is_active").
		From("courses").
		Where("id = ?", id).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var course domain.Course
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&course.ID,
		&course.Name,
		&course.Price,
		&course.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan course: %v", ErrScanRow, err)
	}

	return &course, nil
}
