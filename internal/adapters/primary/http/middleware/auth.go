package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// abortError writes the standard error envelope without pulling the handlers
// package into the middleware chain.
func abortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// Auth validates the Supabase-issued HS256 bearer token and stores the
// subject as the request's user identity.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or expired token")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "token has no subject")
			return
		}

		c.Set(ContextUserID, sub)
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextUserEmail, email)
		}

		c.Next()
	}
}

// APIKey guards internal endpoints with a shared X-Api-Key header. An empty
// configured key disables the check.
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected != "" && c.GetHeader("X-Api-Key") != expected {
			abortError(c, http.StatusForbidden, "FORBIDDEN", "invalid api key")
			return
		}
		c.Next()
	}
}
