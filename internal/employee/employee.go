package employee

import (
	"github.com/hrapp/hr-management/internal/account"
	employeeModel "github.com/hrapp/hr-management/internal/core/datamodel/employee"
	"github.com/hrapp/hr-management/internal/department"
	"github.com/hrapp/hr-management/internal/store"
)

// Response is the external projection of an employee, with the account and
// department relations expanded to their own projections. A dangling foreign
// key projects as null rather than an error.
type Response struct {
	ID           string               `json:"id"`
	EmployeeID   string               `json:"employeeId"`
	Position     string               `json:"position"`
	UserID       int64                `json:"userId"`
	DepartmentID int64                `json:"departmentId"`
	HireDate     string               `json:"hireDate"`
	IsActive     bool                 `json:"isActive"`
	Account      *account.Response    `json:"account"`
	Department   *department.Response `json:"department"`
}

// Project expands the foreign keys against the store's current collections.
func Project(s *store.Store, e *employeeModel.Employee) Response {
	resp := Response{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		Position:     e.Position,
		UserID:       e.UserID,
		DepartmentID: e.DepartmentID,
		HireDate:     e.HireDate,
		IsActive:     e.IsActive,
	}

	if acct := s.AccountByID(e.UserID); acct != nil {
		projected := account.Project(acct)
		resp.Account = &projected
	}
	if dept := s.DepartmentByID(e.DepartmentID); dept != nil {
		projected := department.Project(dept)
		resp.Department = &projected
	}
	return resp
}

func ProjectAll(s *store.Store, employees []*employeeModel.Employee) []Response {
	out := make([]Response, 0, len(employees))
	for _, e := range employees {
		out = append(out, Project(s, e))
	}
	return out
}
