package middleware

import (
	"net/http"
	"strings"

	"horizon-backend/services"

	"github.com/gin-gonic/gin"
)

// principalKey is where RequireAuth stores the parsed claims on the request.
const principalKey = "principal"

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	if len(header) < 8 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", false
	}
	return header[7:], true
}

// RequireAuth validates the bearer token and requires the principal kind to
// match. Guest and admin tokens never work on each other's routes.
func RequireAuth(auth *services.AuthService, kind services.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing or malformed bearer token"})
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired token"})
			return
		}
		if claims.Kind != kind {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "wrong credentials for this resource"})
			return
		}

		c.Set(principalKey, claims)
		c.Next()
	}
}

// OptionalAuth parses a bearer token when one is present but lets the
// request through either way. Public endpoints that behave differently for
// logged-in users sit behind this.
func OptionalAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := auth.ParseToken(token); err == nil {
				c.Set(principalKey, claims)
			}
		}
		c.Next()
	}
}

// Principal returns the authenticated claims set by RequireAuth.
func Principal(c *gin.Context) (*services.Claims, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}
