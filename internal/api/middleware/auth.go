package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianccgg/letranido-backend/pkg/jwt"
	"github.com/cristianccgg/letranido-backend/pkg/redis"
	"github.com/cristianccgg/letranido-backend/pkg/response"
)

// Context keys set by JWTAuth.
const (
	CtxUserID     = "user_id"
	CtxUserEmail  = "user_email"
	CtxIsAdmin    = "is_admin"
	CtxTokenJTI   = "token_jti"
	CtxTokenExpir = "token_expires_at"
)

// JWTAuth validates the Authorization bearer token and injects the
// admin identity into the context. With rdb nil the blacklist check is
// skipped (revocation degrades to TTL expiry).
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "Falta el encabezado de autenticación")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "Encabezado de autenticación inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token inválido o expirado")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "Token inválido o expirado")
				c.Abort()
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Set(CtxTokenJTI, claims.ID)
		c.Set(CtxTokenExpir, claims.ExpiresAt.Time)

		c.Next()
	}
}

// AdminOnly rejects authenticated callers without the admin flag.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(CtxIsAdmin)
		if !exists || !isAdmin.(bool) {
			response.Forbidden(c, 10003, "Se requieren permisos de administración")
			c.Abort()
			return
		}
		c.Next()
	}
}
