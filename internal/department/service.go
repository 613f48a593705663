package department

import (
	"log/slog"
	"net/http"

	errors "github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/auth"
	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
	departmentModel "github.com/hrapp/hr-management/internal/core/datamodel/department"
	"github.com/hrapp/hr-management/internal/store"
)

type Service struct {
	store  *store.Store
	tokens auth.Verifier
	logger *slog.Logger
}

func NewService(s *store.Store, tokens auth.Verifier, logger *slog.Logger) *Service {
	return &Service{
		store:  s,
		tokens: tokens,
		logger: logger,
	}
}

// Create adds a department. Admin only; names are unique.
func (s *Service) Create(header http.Header, dto CreateDTO) (*Response, error) {
	if s.tokens.Authorize(header, accountModel.RoleAdmin) == nil {
		return nil, errors.ErrUnauthorized
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if s.store.DepartmentByName(dto.Name) != nil {
		return nil, errors.NewValidationError("Department name is already registered", errors.ErrCodeNameTaken)
	}

	dept := &departmentModel.Department{
		ID:          s.store.NextDepartmentID(),
		Name:        dto.Name,
		Description: dto.Description,
	}
	s.store.Departments = append(s.store.Departments, dept)
	if err := s.store.SaveDepartments(); err != nil {
		return nil, errors.NewInternalError("failed to persist departments", err)
	}

	s.logger.Info("department created", "department_id", dept.ID, "name", dept.Name)
	resp := Project(dept)
	return &resp, nil
}

func (s *Service) List(header http.Header) ([]Response, error) {
	if !s.tokens.IsAuthenticated(header) {
		return nil, errors.ErrUnauthorized
	}
	return ProjectAll(s.store.Departments), nil
}

func (s *Service) GetByID(header http.Header, id int64) (*Response, error) {
	if !s.tokens.IsAuthenticated(header) {
		return nil, errors.ErrUnauthorized
	}

	dept := s.store.DepartmentByID(id)
	if dept == nil {
		return nil, errors.ErrDepartmentNotFound
	}

	resp := Project(dept)
	return &resp, nil
}

// Update merges the supplied fields. Requires authentication.
func (s *Service) Update(header http.Header, id int64, dto UpdateDTO) (*Response, error) {
	if !s.tokens.IsAuthenticated(header) {
		return nil, errors.ErrUnauthorized
	}

	dept := s.store.DepartmentByID(id)
	if dept == nil {
		return nil, errors.ErrDepartmentNotFound
	}

	if dto.Name != nil {
		dept.Name = *dto.Name
	}
	if dto.Description != nil {
		dept.Description = *dto.Description
	}

	if err := s.store.SaveDepartments(); err != nil {
		return nil, errors.NewInternalError("failed to persist departments", err)
	}

	resp := Project(dept)
	return &resp, nil
}

// Delete removes the department. Admin only. Employees referencing it keep
// their dangling DepartmentID; there is deliberately no cascade.
func (s *Service) Delete(header http.Header, id int64) error {
	if !s.tokens.IsAuthenticated(header) {
		return errors.ErrUnauthorized
	}
	if s.tokens.Authorize(header, accountModel.RoleAdmin) == nil {
		return errors.ErrUnauthorized
	}

	s.store.RemoveDepartment(id)
	if err := s.store.SaveDepartments(); err != nil {
		return errors.NewInternalError("failed to persist departments", err)
	}
	s.logger.Info("department deleted", "department_id", id)
	return nil
}
