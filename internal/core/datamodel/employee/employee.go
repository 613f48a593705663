package employee

// Employee is the stored record. IDs are string-typed to match the external
// contract; UserID and DepartmentID reference accounts and departments.
// At most one employee exists per UserID.
type Employee struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	Position     string `json:"position"`
	UserID       int64  `json:"userId"`
	DepartmentID int64  `json:"departmentId"`
	HireDate     string `json:"hireDate"`
	IsActive     bool   `json:"isActive"`
}
