package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
	"github.com/hrapp/hr-management/internal/store"
)

// TokenService issues and validates the simulator's credentials: short-lived
// signed access tokens and long-lived opaque rotating refresh tokens.
type TokenService struct {
	store      *store.Store
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

func NewTokenService(s *store.Store, secret string, accessTTL, refreshTTL time.Duration, logger *slog.Logger) *TokenService {
	return &TokenService{
		store:      s,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// GenerateAccessToken mints a token encoding the account id and an expiry
// accessTTL from now.
func (s *TokenService) GenerateAccessToken(account *accountModel.Account) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti keeps tokens unique even when two are minted for the
			// same account within one second.
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(account.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateRefreshToken mints a time-ordered opaque token. Validity is decided
// by membership in an account's refresh token set, not by the token itself.
func (s *TokenService) GenerateRefreshToken() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return id.String(), nil
}

// RefreshTokenMaxAge is the cookie lifetime for refresh tokens.
func (s *TokenService) RefreshTokenMaxAge() time.Duration {
	return s.refreshTTL
}

// GenerateOneShotToken mints the opaque tokens used for email verification
// and password resets.
func (s *TokenService) GenerateOneShotToken() string {
	return uuid.NewString()
}

func (s *TokenService) parseAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ResolveCaller implements Verifier. Missing header, malformed token and
// expired token all resolve to nil.
func (s *TokenService) ResolveCaller(header http.Header) *accountModel.Account {
	authHeader := header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}

	claims, err := s.parseAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		s.logger.Debug("access token rejected", "error", err)
		return nil
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil
	}
	return s.store.AccountByID(id)
}

func (s *TokenService) IsAuthenticated(header http.Header) bool {
	return s.ResolveCaller(header) != nil
}

// Authorize requires an exact role match; Admin is not implicitly authorized
// for a User-only check.
func (s *TokenService) Authorize(header http.Header, role accountModel.Role) *accountModel.Account {
	caller := s.ResolveCaller(header)
	if caller == nil || caller.Role != role {
		return nil
	}
	return caller
}
