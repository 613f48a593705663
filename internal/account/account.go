package account

import (
	"time"

	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
)

// Response is the external-safe projection of an account. It never carries
// the password hash, refresh tokens, verification token or reset token pair.
type Response struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	Role        accountModel.Role `json:"role"`
	DateCreated time.Time         `json:"dateCreated"`
	IsVerified  bool              `json:"isVerified"`
	IsActive    bool              `json:"isActive"`
}

// AuthResponse is the authenticate/refresh payload: the projection plus a
// fresh access token. The refresh token travels in a cookie, never here.
type AuthResponse struct {
	Response
	JWTToken string `json:"jwtToken"`
}

func Project(a *accountModel.Account) Response {
	return Response{
		ID:          a.ID,
		Title:       a.Title,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		Role:        a.Role,
		DateCreated: a.DateCreated,
		IsVerified:  a.IsVerified,
		IsActive:    a.IsActive,
	}
}

func ProjectAll(accounts []*accountModel.Account) []Response {
	out := make([]Response, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, Project(a))
	}
	return out
}
