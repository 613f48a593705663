package account

import "time"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Account is the stored record, including secrets that must never leave the
// store unprojected.
type Account struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"passwordHash"`
	Role              Role       `json:"role"`
	IsVerified        bool       `json:"isVerified"`
	IsActive          bool       `json:"isActive"`
	DateCreated       time.Time  `json:"dateCreated"`
	VerificationToken string     `json:"verificationToken,omitempty"`
	ResetToken        string     `json:"resetToken,omitempty"`
	ResetTokenExpires *time.Time `json:"resetTokenExpires,omitempty"`
	RefreshTokens     []string   `json:"refreshTokens"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasRefreshToken reports whether the token is currently in the account's
// valid set.
func (a *Account) HasRefreshToken(token string) bool {
	if token == "" {
		return false
	}
	for _, t := range a.RefreshTokens {
		if t == token {
			return true
		}
	}
	return false
}

// AddRefreshToken grows the valid set by one.
func (a *Account) AddRefreshToken(token string) {
	a.RefreshTokens = append(a.RefreshTokens, token)
}

// RemoveRefreshToken shrinks the valid set by one; unknown tokens are a no-op.
func (a *Account) RemoveRefreshToken(token string) {
	kept := a.RefreshTokens[:0]
	for _, t := range a.RefreshTokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	a.RefreshTokens = kept
}

// ClearResetToken removes the reset token pair after a completed or abandoned
// reset flow.
func (a *Account) ClearResetToken() {
	a.ResetToken = ""
	a.ResetTokenExpires = nil
}

// HasValidResetToken checks the token against the stored pair and its expiry
// at the given wall-clock instant.
func (a *Account) HasValidResetToken(token string, now time.Time) bool {
	if a.ResetToken == "" || a.ResetToken != token {
		return false
	}
	return a.ResetTokenExpires != nil && now.Before(*a.ResetTokenExpires)
}
