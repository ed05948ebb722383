package http_test

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	adapterhttp "tracker/internal/adapters/in/http"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callGuarded(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(nethttp.MethodPatch, "/orders/1/status", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	verifier := adapterhttp.NewStaticTokenVerifier("partner-secret")
	handler := adapterhttp.RequireAuth(verifier)(func(c echo.Context) error {
		return c.NoContent(nethttp.StatusOK)
	})

	require.NoError(t, handler(ctx))
	return rec
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid_token_passes", func(t *testing.T) {
		rec := callGuarded(t, "Bearer partner-secret")
		assert.Equal(t, nethttp.StatusOK, rec.Code)
	})

	t.Run("missing_header_is_unauthorized", func(t *testing.T) {
		rec := callGuarded(t, "")
		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("non_bearer_scheme_is_unauthorized", func(t *testing.T) {
		rec := callGuarded(t, "Basic cGFydG5lcg==")
		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong_token_is_forbidden", func(t *testing.T) {
		rec := callGuarded(t, "Bearer not-the-secret")
		assert.Equal(t, nethttp.StatusForbidden, rec.Code)
	})
}

func TestStaticTokenVerifier(t *testing.T) {
	verifier := adapterhttp.NewStaticTokenVerifier("partner-secret")

	require.NoError(t, verifier.Verify("partner-secret"))
	require.ErrorIs(t, verifier.Verify("other"), adapterhttp.ErrAccessDenied)
	require.ErrorIs(t, verifier.Verify(""), adapterhttp.ErrAccessDenied)
}
