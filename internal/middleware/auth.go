package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tireshop/backoffice/internal/config"
	"github.com/tireshop/backoffice/internal/httperr"
)

const (
	ContextStaffID   = "staffID"
	ContextStaffRole = "staffRole"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token is invalid.")
			c.Abort()
			return
		}

		staffID, ok := claims["sub"].(float64)
		if !ok || staffID <= 0 {
			httperr.Unauthorized(c, "invalid_token_payload", "Token is invalid.")
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextStaffID, uint(staffID))
		c.Set(ContextStaffRole, role)

		c.Next()
	}
}

// StaffID returns the authenticated staff member, zero when unauthenticated.
func StaffID(c *gin.Context) uint {
	id, _ := c.Get(ContextStaffID)
	v, _ := id.(uint)
	return v
}
