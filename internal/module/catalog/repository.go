package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simp-lee/modify/internal/domain"
)

// moduleRepository implements domain.ModuleRepository using GORM.
type moduleRepository struct {
	db *gorm.DB
}

// NewModuleRepository creates a new ModuleRepository backed by the given GORM database.
func NewModuleRepository(db *gorm.DB) domain.ModuleRepository {
	return &moduleRepository{db: db}
}

// FindByKey retrieves exactly one module by its natural key.
func (r *moduleRepository) FindByKey(ctx context.Context, key domain.ModuleKey) (*domain.Module, error) {
	var m domain.Module
	err := r.db.WithContext(ctx).
		Where("school = ? AND year = ? AND sem = ? AND code = ?", key.School, key.Year, key.Sem, key.Code).
		Take(&m).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

// ListBySemester returns every module offered in sem, ordered by code.
func (r *moduleRepository) ListBySemester(ctx context.Context, sem domain.Semester) ([]domain.Module, error) {
	modules := make([]domain.Module, 0)
	err := r.db.WithContext(ctx).
		Where("school = ? AND year = ? AND sem = ?", sem.School, sem.Year, sem.Sem).
		Order("code asc").
		Find(&modules).Error
	if err != nil {
		return nil, mapError(err)
	}
	return modules, nil
}

// mapError converts GORM errors to domain errors. Only a missing row is
// remapped; every other failure surfaces as an internal error.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewAppError(domain.CodeNotFound, "module not found", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}
