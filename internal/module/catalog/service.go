package catalog

import (
	"context"

	"github.com/simp-lee/modify/internal/domain"
)

// moduleService implements domain.ModuleService.
type moduleService struct {
	repo domain.ModuleRepository
}

// NewModuleService creates a new ModuleService with the given repository.
func NewModuleService(repo domain.ModuleRepository) domain.ModuleService {
	return &moduleService{repo: repo}
}

// GetModule retrieves the module identified by key. The handler validates
// every field first; the school check guards callers outside HTTP.
func (s *moduleService) GetModule(ctx context.Context, key domain.ModuleKey) (*domain.Module, error) {
	if !key.School.Valid() {
		return nil, domain.NewAppError(domain.CodeValidation, msgSchool, nil)
	}
	return s.repo.FindByKey(ctx, key)
}

// ListModules returns the modules offered in sem. No match is an empty list.
// As in GetModule, the school check guards callers outside HTTP.
func (s *moduleService) ListModules(ctx context.Context, sem domain.Semester) ([]domain.Module, error) {
	if !sem.School.Valid() {
		return nil, domain.NewAppError(domain.CodeValidation, msgSchool, nil)
	}
	modules, err := s.repo.ListBySemester(ctx, sem)
	if err != nil {
		return nil, err
	}
	if modules == nil {
		modules = []domain.Module{}
	}
	return modules, nil
}
