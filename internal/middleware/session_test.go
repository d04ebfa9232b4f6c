package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopapp/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionEcho(t *testing.T, issuer *auth.TokenIssuer) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		userID, _ := c.Get(CtxUserIDKey).(string)
		return c.JSON(http.StatusOK, map[string]string{"user_id": userID})
	}, Session(issuer))
	return e
}

func TestSession_ValidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	e := newSessionEcho(t, issuer)

	token, _, err := issuer.Issue("u-1", time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"u-1"`)
}

func TestSession_Unauthorized(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	e := newSessionEcho(t, issuer)

	otherIssuer := auth.NewTokenIssuer("wrong-secret", time.Hour)
	forged, _, err := otherIssuer.Issue("u-1", time.Now())
	require.NoError(t, err)

	expiredIssuer := auth.NewTokenIssuer("test-secret", time.Hour)
	expired, _, err := expiredIssuer.Issue("u-1", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "ヘッダなし", header: ""},
		{name: "Bearer形式でない", header: "Token abc"},
		{name: "tokenが空", header: "Bearer "},
		{name: "署名が違う", header: "Bearer " + forged},
		{name: "期限切れ", header: "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
