package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"reservas-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxAdminIDKey    = "admin_id"
	ctxAdminEmailKey = "admin_email"
	ctxAdminRoleKey  = "admin_role"
)

type AuthMiddleware struct {
	auth commands.AuthCommands
}

func NewAuthMiddleware(auth commands.AuthCommands) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAdmin guards the back-office routes with a bearer token.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			slog.Warn("token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxAdminIDKey, claims.AdminID)
		c.Set(ctxAdminEmailKey, claims.Email)
		c.Set(ctxAdminRoleKey, claims.Role)
		c.Next()
	}
}

func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxAdminIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
