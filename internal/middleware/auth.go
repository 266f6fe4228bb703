package middleware

import (
	"context"
	"net/http"
	"strings"

	"zapshift/internal/auth"
	"zapshift/internal/model"

	"github.com/gin-gonic/gin"
)

const authContextKey = "authContext"

// AuthContext is the typed identity produced by the auth step. It is set once
// by Authenticate and read immutably by handlers and role guards.
type AuthContext struct {
	Email string
	Name  string
	Role  string
}

func (a AuthContext) IsAdmin() bool { return a.Role == model.RoleAdmin }
func (a AuthContext) IsRider() bool { return a.Role == model.RoleRider }

// CanAccessEmail reports whether the caller may read records scoped to the
// given email: their own, or anything if admin.
func (a AuthContext) CanAccessEmail(email string) bool {
	return a.IsAdmin() || strings.EqualFold(a.Email, email)
}

// RoleResolver resolves a verified email to its stored role.
type RoleResolver interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Authenticate verifies the Authorization bearer token and attaches an
// AuthContext to the request.
func Authenticate(verifier auth.TokenVerifier, roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Missing Authorization header", ""))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid Authorization header format", ""))
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid or expired token", ""))
			return
		}

		role, err := roles.RoleByEmail(c.Request.Context(), identity.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to resolve caller role", ""))
			return
		}

		c.Set(authContextKey, AuthContext{
			Email: identity.Email,
			Name:  identity.Name,
			Role:  role,
		})
		c.Next()
	}
}

// GetAuth returns the AuthContext attached by Authenticate.
func GetAuth(c *gin.Context) (AuthContext, bool) {
	v, exists := c.Get(authContextKey)
	if !exists {
		return AuthContext{}, false
	}
	ac, ok := v.(AuthContext)
	return ac, ok
}

// RequireRole rejects callers whose resolved role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := GetAuth(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
			return
		}
		if ac.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse("Forbidden: requires "+role+" role", ""))
			return
		}
		c.Next()
	}
}

// RequireAdmin guards admin-only routes
func RequireAdmin() gin.HandlerFunc { return RequireRole(model.RoleAdmin) }

// RequireRider guards rider-only routes
func RequireRider() gin.HandlerFunc { return RequireRole(model.RoleRider) }
