package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ErrAccessDenied is returned by an AccessVerifier when the presented
// credential is well-formed but not acceptable.
var ErrAccessDenied = errors.New("access denied")

// AccessVerifier checks the credential attached to a status-changing
// request. Identity issuance and session management live outside this
// service; the adapter only consumes an already-agreed credential.
type AccessVerifier interface {
	Verify(token string) error
}

// StaticTokenVerifier accepts a single pre-shared partner token.
type StaticTokenVerifier struct {
	token string
}

// NewStaticTokenVerifier creates a verifier for the given pre-shared token.
func NewStaticTokenVerifier(token string) StaticTokenVerifier {
	return StaticTokenVerifier{token: token}
}

// Verify compares the presented token against the configured one in
// constant time.
func (v StaticTokenVerifier) Verify(token string) error {
	if subtle.ConstantTimeCompare([]byte(v.token), []byte(token)) != 1 {
		return ErrAccessDenied
	}
	return nil
}

// RequireAuth returns middleware guarding partner endpoints. Requests
// without a bearer credential get 401; requests the verifier rejects
// get 403.
func RequireAuth(verifier AccessVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return errorResponse(ctx, http.StatusUnauthorized, "Missing bearer token")
			}

			if err := verifier.Verify(token); err != nil {
				return errorResponse(ctx, http.StatusForbidden, "Invalid credentials")
			}

			return next(ctx)
		}
	}
}
