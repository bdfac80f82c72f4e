package httpgin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// BearerAuth validates an HS256 bearer token signed with secret and stores
// its subject under "staff_id". An empty secret returns nil, which
// NewRouter treats as "no auth".
func BearerAuth(secret string) gin.HandlerFunc {
	if secret == "" {
		return nil
	}

	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}

		tok, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tok.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		if sub, err := tok.Claims.GetSubject(); err == nil && sub != "" {
			c.Set("staff_id", sub)
		}

		c.Next()
	}
}
