package middleware

import (
	"net/http"
	"strings"

	"escape-portal/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID         = "user_id"
	ContextEmail          = "email"
	ContextRole           = "role"
	ContextOrganisationID = "organisation_id"
)

// Authenticate parses the Bearer token and stores the resolved identity on
// the request context. Role and organisation come from the token claims, set
// once at sign-in; handlers never re-fetch them.
func Authenticate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_TOKEN",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &models.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			return []byte(jwtSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
				"code":  "INVALID_TOKEN",
			})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextOrganisationID, claims.OrganisationID)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role claim is not in the
// allowed set.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "You do not have permission to perform this action",
				"code":  "PERMISSION_DENIED",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
