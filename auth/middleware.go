package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cvmate/backend/models"
)

// AuthClaimsKey is the key used to store JWT claims in gin context
const AuthClaimsKey = "auth_claims"

// Middleware creates a gin middleware for JWT bearer authentication
func Middleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Not authorized, no token"))
			return
		}

		// Check Bearer token format
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Invalid authorization header format"))
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("Not authorized, token failed"))
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin allows only callers whose token carries the admin role.
// Must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, models.Fail("Admin access required"))
			return
		}
		c.Next()
	}
}

// GetClaims retrieves auth claims from gin context
func GetClaims(c *gin.Context) *Claims {
	claims, exists := c.Get(AuthClaimsKey)
	if !exists {
		return nil
	}
	return claims.(*Claims)
}

// CallerID returns the canonical id of the authenticated caller, or ""
// when the request is unauthenticated. Ownership checks compare this
// value against a record's owner id; no other id coercion exists.
func CallerID(c *gin.Context) string {
	claims := GetClaims(c)
	if claims == nil {
		return ""
	}
	return claims.UserID
}
