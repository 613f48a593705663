package account

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errors "github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/auth"
	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
	"github.com/hrapp/hr-management/internal/core/events"
	"github.com/hrapp/hr-management/internal/store"
)

// Event types published for simulated email delivery.
const (
	EventVerificationRequired = "account.verification_required"
	EventAlreadyRegistered    = "account.already_registered"
	EventPasswordReset        = "account.password_reset"
	EventFirstAdmin           = "account.first_admin"
)

type Service struct {
	store      *store.Store
	tokens     *auth.TokenService
	bus        *events.EventBus
	bcryptCost int
	resetTTL   time.Duration
	logger     *slog.Logger
}

func NewService(s *store.Store, tokens *auth.TokenService, bus *events.EventBus, bcryptCost int, resetTTL time.Duration, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if resetTTL <= 0 {
		resetTTL = 24 * time.Hour
	}
	return &Service{
		store:      s,
		tokens:     tokens,
		bus:        bus,
		bcryptCost: bcryptCost,
		resetTTL:   resetTTL,
		logger:     logger,
	}
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", errors.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

func (s *Service) passwordMatches(acct *accountModel.Account, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) == nil
}

func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	event := events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "event_type", eventType, "error", err)
	}
}

// Authenticate checks credentials and account state, rotates in a new refresh
// token and returns the projection plus a fresh access token. The refresh
// token is returned separately for cookie delivery.
func (s *Service) Authenticate(ctx context.Context, dto AuthenticateDTO) (*AuthResponse, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	acct := s.store.AccountByEmail(dto.Email)
	if acct == nil || !s.passwordMatches(acct, dto.Password) {
		return nil, "", errors.ErrInvalidCredentials
	}
	if !acct.IsActive {
		return nil, "", errors.ErrAccountInactive
	}
	if !acct.IsVerified {
		s.publish(ctx, EventVerificationRequired, map[string]interface{}{
			"email": acct.Email,
			"token": acct.VerificationToken,
		})
		return nil, "", errors.ErrEmailNotVerified
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, "", err
	}
	acct.AddRefreshToken(refreshToken)
	if err := s.store.SaveAccounts(); err != nil {
		return nil, "", errors.NewInternalError("failed to persist accounts", err)
	}

	jwtToken, err := s.tokens.GenerateAccessToken(acct)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to issue access token", err)
	}

	s.logger.Info("account authenticated", "account_id", acct.ID)
	return &AuthResponse{Response: Project(acct), JWTToken: jwtToken}, refreshToken, nil
}

// Refresh rotates the presented refresh token: the old one leaves the set,
// a new one enters, and a fresh access token is issued. This models a
// sliding session.
func (s *Service) Refresh(refreshToken string) (*AuthResponse, string, error) {
	if refreshToken == "" {
		return nil, "", errors.ErrUnauthorized
	}

	acct := s.store.AccountByRefreshToken(refreshToken)
	if acct == nil {
		return nil, "", errors.ErrUnauthorized
	}

	newToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, "", err
	}
	acct.RemoveRefreshToken(refreshToken)
	acct.AddRefreshToken(newToken)
	if err := s.store.SaveAccounts(); err != nil {
		return nil, "", errors.NewInternalError("failed to persist accounts", err)
	}

	jwtToken, err := s.tokens.GenerateAccessToken(acct)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to issue access token", err)
	}

	return &AuthResponse{Response: Project(acct), JWTToken: jwtToken}, newToken, nil
}

// Revoke removes the presented refresh token from its account; no new token
// is issued. Requires an authenticated caller.
func (s *Service) Revoke(header http.Header, refreshToken string) error {
	if !s.tokens.IsAuthenticated(header) {
		return errors.ErrUnauthorized
	}

	acct := s.store.AccountByRefreshToken(refreshToken)
	if acct == nil {
		return nil
	}

	acct.RemoveRefreshToken(refreshToken)
	if err := s.store.SaveAccounts(); err != nil {
		return errors.NewInternalError("failed to persist accounts", err)
	}
	s.logger.Info("refresh token revoked", "account_id", acct.ID)
	return nil
}

// Register creates an account, or silently reports success when the email is
// already registered so callers cannot enumerate existing emails.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if existing := s.store.AccountByEmail(dto.Email); existing != nil {
		s.publish(ctx, EventAlreadyRegistered, map[string]interface{}{
			"email": existing.Email,
		})
		return nil
	}

	hash, err := s.hashPassword(dto.Password)
	if err != nil {
		return err
	}

	acct := &accountModel.Account{
		ID:                s.store.NextAccountID(),
		Title:             dto.Title,
		FirstName:         dto.FirstName,
		LastName:          dto.LastName,
		Email:             dto.Email,
		PasswordHash:      hash,
		IsActive:          true,
		DateCreated:       time.Now(),
		VerificationToken: s.tokens.GenerateOneShotToken(),
		RefreshTokens:     []string{},
	}

	// The first registered account becomes the verified admin; everyone
	// after registers as an unverified user.
	if acct.ID == 1 {
		acct.Role = accountModel.RoleAdmin
		acct.IsVerified = true
	} else {
		acct.Role = accountModel.RoleUser
		acct.IsVerified = false
	}

	s.store.Accounts = append(s.store.Accounts, acct)
	if err := s.store.SaveAccounts(); err != nil {
		return errors.NewInternalError("failed to persist accounts", err)
	}

	if acct.ID == 1 {
		s.publish(ctx, EventFirstAdmin, map[string]interface{}{
			"email": acct.Email,
		})
	} else {
		s.publish(ctx, EventVerificationRequired, map[string]interface{}{
			"email": acct.Email,
			"token": acct.VerificationToken,
		})
	}

	s.logger.Info("account registered", "account_id", acct.ID, "role", acct.Role)
	return nil
}

// VerifyEmail flips the verified flag when the token matches some account.
func (s *Service) VerifyEmail(dto VerifyEmailDTO) error {
	acct := s.store.AccountByVerificationToken(dto.Token)
	if acct == nil {
		return errors.ErrVerificationFailed
	}

	acct.IsVerified = true
	if err := s.store.SaveAccounts(); err != nil {
		return errors.NewInternalError("failed to persist accounts", err)
	}
	return nil
}

// ForgotPassword mints a reset token with a 24h expiry. Unknown emails
// report success without side effects so callers cannot enumerate accounts.
func (s *Service) ForgotPassword(ctx context.Context, dto ForgotPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	acct := s.store.AccountByEmail(dto.Email)
	if acct == nil {
		return nil
	}

	expires := time.Now().Add(s.resetTTL)
	acct.ResetToken = s.tokens.GenerateOneShotToken()
	acct.ResetTokenExpires = &expires
	if err := s.store.SaveAccounts(); err != nil {
		return errors.NewInternalError("failed to persist accounts", err)
	}

	s.publish(ctx, EventPasswordReset, map[string]interface{}{
		"email": acct.Email,
		"token": acct.ResetToken,
	})
	return nil
}

// ValidateResetToken checks token match and expiry against wall-clock time.
func (s *Service) ValidateResetToken(dto ValidateResetTokenDTO) error {
	if s.store.AccountByResetToken(dto.Token, time.Now()) == nil {
		return errors.ErrInvalidResetToken
	}
	return nil
}

// ResetPassword consumes an unexpired reset token: sets the new password,
// marks the account verified and clears the token pair.
func (s *Service) ResetPassword(dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	acct := s.store.AccountByResetToken(dto.Token, time.Now())
	if acct == nil {
		return errors.ErrInvalidResetToken
	}

	hash, err := s.hashPassword(dto.Password)
	if err != nil {
		return err
	}
	acct.PasswordHash = hash
	acct.IsVerified = true
	acct.ClearResetToken()
	if err := s.store.SaveAccounts(); err != nil {
		return errors.NewInternalError("failed to persist accounts", err)
	}
	s.logger.Info("password reset", "account_id", acct.ID)
	return nil
}

// List returns every account's projection. Requires authentication.
func (s *Service) List(header http.Header) ([]Response, error) {
	if !s.tokens.IsAuthenticated(header) {
		return nil, errors.ErrUnauthorized
	}
	return ProjectAll(s.store.Accounts), nil
}

// GetByID returns one projection. Callers may fetch their own record; any
// other record requires the Admin role.
func (s *Service) GetByID(header http.Header, id int64) (*Response, error) {
	caller := s.tokens.ResolveCaller(header)
	if caller == nil {
		return nil, errors.ErrUnauthorized
	}

	acct := s.store.AccountByID(id)
	if acct == nil {
		return nil, errors.ErrAccountNotFound
	}
	if acct.ID != caller.ID && !caller.IsAdmin() {
		return nil, errors.ErrUnauthorized
	}

	resp := Project(acct)
	return &resp, nil
}

// Create is the admin-only path; unlike Register it rejects duplicate emails
// outright and creates the account pre-verified.
func (s *Service) Create(header http.Header, dto CreateDTO) (*Response, error) {
	if s.tokens.Authorize(header, accountModel.RoleAdmin) == nil {
		return nil, errors.ErrUnauthorized
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if s.store.AccountByEmail(dto.Email) != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("Email %s is already registered", dto.Email), errors.ErrCodeEmailTaken)
	}

	hash, err := s.hashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	role := dto.Role
	if role == "" {
		role = accountModel.RoleUser
	}

	acct := &accountModel.Account{
		ID:            s.store.NextAccountID(),
		Title:         dto.Title,
		FirstName:     dto.FirstName,
		LastName:      dto.LastName,
		Email:         dto.Email,
		PasswordHash:  hash,
		Role:          role,
		IsVerified:    true,
		IsActive:      true,
		DateCreated:   time.Now(),
		RefreshTokens: []string{},
	}
	s.store.Accounts = append(s.store.Accounts, acct)
	if err := s.store.SaveAccounts(); err != nil {
		return nil, errors.NewInternalError("failed to persist accounts", err)
	}

	resp := Project(acct)
	return &resp, nil
}

// Update merges the supplied fields onto the record. Users may update their
// own profile; Admin may update any.
func (s *Service) Update(header http.Header, id int64, dto UpdateDTO) (*Response, error) {
	caller := s.tokens.ResolveCaller(header)
	if caller == nil {
		return nil, errors.ErrUnauthorized
	}

	acct := s.store.AccountByID(id)
	if acct == nil {
		return nil, errors.ErrAccountNotFound
	}
	if acct.ID != caller.ID && !caller.IsAdmin() {
		return nil, errors.ErrUnauthorized
	}

	if dto.Title != nil {
		acct.Title = *dto.Title
	}
	if dto.FirstName != nil {
		acct.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		acct.LastName = *dto.LastName
	}
	if dto.Email != nil {
		acct.Email = *dto.Email
	}
	if dto.Role != nil {
		acct.Role = *dto.Role
	}
	if dto.IsActive != nil {
		acct.IsActive = *dto.IsActive
	}
	if dto.IsVerified != nil {
		acct.IsVerified = *dto.IsVerified
	}
	if dto.Password != nil && *dto.Password != "" {
		hash, err := s.hashPassword(*dto.Password)
		if err != nil {
			return nil, err
		}
		acct.PasswordHash = hash
	}

	if err := s.store.SaveAccounts(); err != nil {
		return nil, errors.NewInternalError("failed to persist accounts", err)
	}

	resp := Project(acct)
	return &resp, nil
}

// Delete removes the record. Users may delete their own account; Admin may
// delete any.
func (s *Service) Delete(header http.Header, id int64) error {
	caller := s.tokens.ResolveCaller(header)
	if caller == nil {
		return errors.ErrUnauthorized
	}

	acct := s.store.AccountByID(id)
	if acct == nil {
		return errors.ErrAccountNotFound
	}
	if acct.ID != caller.ID && !caller.IsAdmin() {
		return errors.ErrUnauthorized
	}

	s.store.RemoveAccount(id)
	if err := s.store.SaveAccounts(); err != nil {
		return errors.NewInternalError("failed to persist accounts", err)
	}
	s.logger.Info("account deleted", "account_id", id)
	return nil
}
