package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zapshift/internal/auth"
	"zapshift/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

type staticRoleResolver map[string]string

func (r staticRoleResolver) RoleByEmail(ctx context.Context, email string) (string, error) {
	if role, ok := r[email]; ok {
		return role, nil
	}
	return model.RoleUser, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	roles := staticRoleResolver{
		"admin@example.com": model.RoleAdmin,
		"rider@example.com": model.RoleRider,
	}
	verifier := auth.NewJWTVerifier(testSecret)

	r := gin.New()
	authed := r.Group("", Authenticate(verifier, roles))
	authed.GET("/whoami", func(c *gin.Context) {
		ac, ok := GetAuth(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": ac.Email, "role": ac.Role})
	})
	authed.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	authed.GET("/rider-only", RequireRider(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, token string) func(path string) *httptest.ResponseRecorder {
	return func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
}

func mustToken(t *testing.T, email string) string {
	t.Helper()
	token, err := auth.GenerateToken(email, "", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, "")("/whoami")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, "garbage")("/whoami")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateResolvesRole(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(r, mustToken(t, "admin@example.com"))("/whoami")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestRoleGuards(t *testing.T) {
	r := newTestRouter(t)

	adminToken := mustToken(t, "admin@example.com")
	riderToken := mustToken(t, "rider@example.com")
	userToken := mustToken(t, "plain@example.com")

	assert.Equal(t, http.StatusOK, doRequest(r, adminToken)("/admin-only").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, riderToken)("/admin-only").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, userToken)("/admin-only").Code)

	assert.Equal(t, http.StatusOK, doRequest(r, riderToken)("/rider-only").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, adminToken)("/rider-only").Code)
}

func TestCanAccessEmail(t *testing.T) {
	admin := AuthContext{Email: "admin@example.com", Role: model.RoleAdmin}
	user := AuthContext{Email: "user@example.com", Role: model.RoleUser}

	assert.True(t, admin.CanAccessEmail("anyone@example.com"))
	assert.True(t, user.CanAccessEmail("User@Example.com"))
	assert.False(t, user.CanAccessEmail("other@example.com"))
}
