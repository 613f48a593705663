package department

import (
	errors "github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/core/common/validation"
)

type CreateDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d CreateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required()
	return v.Validate()
}

// UpdateDTO merges onto the existing record; nil fields are left untouched.
type UpdateDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
