package employee

import (
	"log/slog"
	"net/http"

	errors "github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/auth"
	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
	employeeModel "github.com/hrapp/hr-management/internal/core/datamodel/employee"
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

// Create adds an employee record. Admin only. The referenced account must
// exist, carry no other employee record, and the department must exist.
func (s *Service) Create(header http.Header, dto CreateDTO) (*Response, error) {
	if s.tokens.Authorize(header, accountModel.RoleAdmin) == nil {
		return nil, errors.ErrUnauthorized
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if s.store.AccountByID(dto.UserID) == nil {
		return nil, errors.ErrUserNotFound
	}
	if s.store.EmployeeByUserID(dto.UserID) != nil {
		return nil, errors.ErrEmployeeExists
	}
	// Referential failures on create are validation errors, like the user
	// check above; 404s are reserved for ids addressed in the path.
	if s.store.DepartmentByID(dto.DepartmentID) == nil {
		return nil, errors.ErrInvalidDepartment
	}

	emp := &employeeModel.Employee{
		ID:           s.store.NextEmployeeID(),
		EmployeeID:   dto.EmployeeID,
		Position:     dto.Position,
		UserID:       dto.UserID,
		DepartmentID: dto.DepartmentID,
		HireDate:     dto.HireDate,
		IsActive:     true,
	}
	s.store.Employees = append(s.store.Employees, emp)
	if err := s.store.SaveEmployees(); err != nil {
		return nil, errors.NewInternalError("failed to persist employees", err)
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "user_id", emp.UserID)
	resp := Project(s.store, emp)
	return &resp, nil
}

func (s *Service) List(header http.Header) ([]Response, error) {
	if !s.tokens.IsAuthenticated(header) {
		return nil, errors.ErrUnauthorized
	}
	return ProjectAll(s.store, s.store.Employees), nil
}

func (s *Service) GetByID(header http.Header, id string) (*Response, error) {
	if !s.tokens.IsAuthenticated(header) {
		return nil, errors.ErrUnauthorized
	}

	emp := s.store.EmployeeByID(id)
	if emp == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	resp := Project(s.store, emp)
	return &resp, nil
}

// Update merges the supplied fields. Admin only.
func (s *Service) Update(header http.Header, id string, dto UpdateDTO) (*Response, error) {
	if !s.tokens.IsAuthenticated(header) {
		return nil, errors.ErrUnauthorized
	}
	if s.tokens.Authorize(header, accountModel.RoleAdmin) == nil {
		return nil, errors.ErrUnauthorized
	}

	emp := s.store.EmployeeByID(id)
	if emp == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	if dto.EmployeeID != nil {
		emp.EmployeeID = *dto.EmployeeID
	}
	if dto.Position != nil {
		emp.Position = *dto.Position
	}
	if dto.UserID != nil {
		emp.UserID = *dto.UserID
	}
	if dto.DepartmentID != nil {
		emp.DepartmentID = *dto.DepartmentID
	}
	if dto.HireDate != nil {
		emp.HireDate = *dto.HireDate
	}
	if dto.IsActive != nil {
		emp.IsActive = *dto.IsActive
	}

	if err := s.store.SaveEmployees(); err != nil {
		return nil, errors.NewInternalError("failed to persist employees", err)
	}

	resp := Project(s.store, emp)
	return &resp, nil
}

// Delete removes the employee record. Admin only.
func (s *Service) Delete(header http.Header, id string) error {
	if !s.tokens.IsAuthenticated(header) {
		return errors.ErrUnauthorized
	}
	if s.tokens.Authorize(header, accountModel.RoleAdmin) == nil {
		return errors.ErrUnauthorized
	}

	if !s.store.RemoveEmployee(id) {
		return errors.ErrEmployeeNotFound
	}
	if err := s.store.SaveEmployees(); err != nil {
		return errors.NewInternalError("failed to persist employees", err)
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// Transfer moves the employee to another department, which must exist.
// Admin only.
func (s *Service) Transfer(header http.Header, id string, dto TransferDTO) (*Response, error) {
	if !s.tokens.IsAuthenticated(header) {
		return nil, errors.ErrUnauthorized
	}
	if s.tokens.Authorize(header, accountModel.RoleAdmin) == nil {
		return nil, errors.ErrUnauthorized
	}

	emp := s.store.EmployeeByID(id)
	if emp == nil {
		return nil, errors.ErrEmployeeNotFound
	}
	if s.store.DepartmentByID(dto.DepartmentID) == nil {
		return nil, errors.ErrInvalidDepartment
	}

	emp.DepartmentID = dto.DepartmentID
	if err := s.store.SaveEmployees(); err != nil {
		return nil, errors.NewInternalError("failed to persist employees", err)
	}

	s.logger.Info("employee transferred", "employee_id", id, "department_id", dto.DepartmentID)
	resp := Project(s.store, emp)
	return &resp, nil
}
