package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
)

// Claims are the access token payload: subject id plus the registered expiry.
// The token is HMAC-signed but the simulator is not a security boundary; any
// holder of the process secret can mint one.
type Claims struct {
	jwt.RegisteredClaims
}

// Verifier resolves the calling account from request headers. Handlers depend
// on this interface rather than the concrete token service.
type Verifier interface {
	// ResolveCaller returns the account behind a valid bearer token, or nil
	// when the header is missing, malformed or expired.
	ResolveCaller(header http.Header) *accountModel.Account

	// IsAuthenticated reports whether ResolveCaller would succeed.
	IsAuthenticated(header http.Header) bool

	// Authorize returns the caller only when its role exactly equals the
	// required role. Roles are not hierarchical.
	Authorize(header http.Header, role accountModel.Role) *accountModel.Account
}
