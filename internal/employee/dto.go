package employee

import (
	errors "github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/core/common/validation"
)

type CreateDTO struct {
	EmployeeID   string `json:"employeeId"`
	Position     string `json:"position"`
	UserID       int64  `json:"userId"`
	DepartmentID int64  `json:"departmentId"`
	HireDate     string `json:"hireDate"`
}

func (d CreateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("employeeId", d.EmployeeID).Required()
	v.Field("position", d.Position).Required()
	v.Field("userId", d.UserID).Required()
	v.Field("departmentId", d.DepartmentID).Required()
	return v.Validate()
}

// UpdateDTO merges onto the existing record; nil fields are left untouched.
type UpdateDTO struct {
	EmployeeID   *string `json:"employeeId"`
	Position     *string `json:"position"`
	UserID       *int64  `json:"userId"`
	DepartmentID *int64  `json:"departmentId"`
	HireDate     *string `json:"hireDate"`
	IsActive     *bool   `json:"isActive"`
}

// TransferDTO moves an employee to another department.
type TransferDTO struct {
	DepartmentID int64 `json:"departmentId"`
}
