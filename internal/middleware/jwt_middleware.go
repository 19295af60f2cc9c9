package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mirastore/catalog_api/internal/utils"
)

// Context keys under which the authenticated admin identity is stored for
// downstream handlers.
const (
	CtxAdminID    = "adminID"
	CtxAdminEmail = "adminEmail"
)

// JWTMiddleware guards the admin API. Requests must carry a bearer token
// issued by the login endpoint; the local-store mode mounts the admin
// routes without this guard.
type JWTMiddleware struct{}

func NewJWTMiddleware() *JWTMiddleware {
	return &JWTMiddleware{}
}

func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CtxAdminID, claims.UserID)
		c.Set(CtxAdminEmail, claims.Email)
		c.Next()
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer ..."
// header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}
