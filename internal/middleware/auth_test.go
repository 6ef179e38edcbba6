package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(allowedRoles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuthenticator(testSecret, ClaimRoleAuthorizer{})

	r := gin.New()
	r.GET("/protected", auth.RequireRole(allowedRoles...), func(c *gin.Context) {
		id, _ := c.Get("cognito_id")
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{"cognitoId": id, "role": role})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoleMissingHeader(t *testing.T) {
	w := get(protectedRouter(RoleTenant), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleValidToken(t *testing.T) {
	token := signToken(t, testSecret, "tenant", "tenant-1", time.Now().Add(time.Hour))
	w := get(protectedRouter(RoleTenant), token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tenant-1")
}

func TestRequireRoleCaseInsensitive(t *testing.T) {
	token := signToken(t, testSecret, "Tenant", "tenant-1", time.Now().Add(time.Hour))
	w := get(protectedRouter(RoleTenant), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleWrongRole(t *testing.T) {
	token := signToken(t, testSecret, "tenant", "tenant-1", time.Now().Add(time.Hour))
	w := get(protectedRouter(RoleManager), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, "tenant", "tenant-1", time.Now().Add(-time.Hour))
	w := get(protectedRouter(RoleTenant), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", "tenant", "tenant-1", time.Now().Add(time.Hour))
	w := get(protectedRouter(RoleTenant), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleMalformedHeader(t *testing.T) {
	r := protectedRouter(RoleTenant)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
