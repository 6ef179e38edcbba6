package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/hivenest/hivenest-backend/internal/utils"
)

const (
	RoleTenant  = "tenant"
	RoleManager = "manager"
)

// TokenClaims is the shape of the hosted identity provider's access
// token. The subject is the Cognito-style user identifier that keys
// tenant and manager rows.
type TokenClaims struct {
	Role string `json:"custom:role"`
	jwt.RegisteredClaims
}

// RoleAuthorizer decides whether validated claims may enter a route
// group. Keeping this behind an interface isolates claim naming and
// token format from the route wiring.
type RoleAuthorizer interface {
	Authorize(claims *TokenClaims, allowedRoles ...string) bool
}

// ClaimRoleAuthorizer matches the token's role claim against the route
// group's allowed roles, case-insensitively.
type ClaimRoleAuthorizer struct{}

func (ClaimRoleAuthorizer) Authorize(claims *TokenClaims, allowedRoles ...string) bool {
	role := strings.ToLower(claims.Role)
	for _, allowed := range allowedRoles {
		if role == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// Authenticator validates bearer tokens and enforces route-group roles.
type Authenticator struct {
	secret     []byte
	authorizer RoleAuthorizer
}

func NewAuthenticator(secret string, authorizer RoleAuthorizer) *Authenticator {
	return &Authenticator{
		secret:     []byte(secret),
		authorizer: authorizer,
	}
}

func (a *Authenticator) validateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// RequireRole authenticates the request and checks the role claim
// against the roles allowed for the route group.
func (a *Authenticator) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := a.validateToken(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if len(allowedRoles) > 0 && !a.authorizer.Authorize(claims, allowedRoles...) {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}

		c.Set("cognito_id", claims.Subject)
		c.Set("user_role", strings.ToLower(claims.Role))
		c.Next()
	}
}
