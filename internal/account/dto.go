package account

import (
	errors "github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/core/common/validation"
	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
)

type AuthenticateDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d AuthenticateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

type RegisterDTO struct {
	Title           string `json:"title"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (d RegisterDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("firstName", d.FirstName).Required()
	v.Field("lastName", d.LastName).Required()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(6)
	return v.Validate()
}

type VerifyEmailDTO struct {
	Token string `json:"token"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email"`
}

func (d ForgotPasswordDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	return v.Validate()
}

type ValidateResetTokenDTO struct {
	Token string `json:"token"`
}

type ResetPasswordDTO struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (d ResetPasswordDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("token", d.Token).Required()
	v.Field("password", d.Password).Required().MinLength(6)
	return v.Validate()
}

// CreateDTO is the admin-only account creation shape.
type CreateDTO struct {
	Title     string            `json:"title"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	Role      accountModel.Role `json:"role"`
}

func (d CreateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("firstName", d.FirstName).Required()
	v.Field("lastName", d.LastName).Required()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(6)
	if err := v.Validate(); err != nil {
		return err
	}
	switch d.Role {
	case "", accountModel.RoleAdmin, accountModel.RoleUser:
		return nil
	default:
		return errors.NewValidationError("Role must be Admin or User", errors.ErrCodeValidationFailed)
	}
}

// UpdateDTO merges onto the existing record; nil fields are left untouched.
// An empty password means "keep the current password".
type UpdateDTO struct {
	Title      *string            `json:"title"`
	FirstName  *string            `json:"firstName"`
	LastName   *string            `json:"lastName"`
	Email      *string            `json:"email"`
	Password   *string            `json:"password"`
	Role       *accountModel.Role `json:"role"`
	IsActive   *bool              `json:"isActive"`
	IsVerified *bool              `json:"isVerified"`
}
