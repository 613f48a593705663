package department

import (
	departmentModel "github.com/hrapp/hr-management/internal/core/datamodel/department"
)

// Response is the external projection of a department.
type Response struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func Project(d *departmentModel.Department) Response {
	return Response{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
}

func ProjectAll(departments []*departmentModel.Department) []Response {
	out := make([]Response, 0, len(departments))
	for _, d := range departments {
		out = append(out, Project(d))
	}
	return out
}
