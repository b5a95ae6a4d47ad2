package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/pkg/response"
)

const ctxUserIDKey = "auth.user_id"

// JWTAuth 校验 Bearer token（签发在别处），把操作者 id 放进请求上下文。
// handler 再显式传给 service，不走全局状态
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.Auth.JWTSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		}, jwt.WithIssuer(cfg.Auth.Issuer))
		if err != nil || !token.Valid || claims.Subject == "" {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.Subject)
		c.Next()
	}
}

// ActorID 当前请求的已认证用户 id
func ActorID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}
