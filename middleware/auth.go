package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"Lexipic/pkg/config"
	tokenstore "Lexipic/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserIDKey = "current_user_id"
	ContextJTIKey    = "current_jti"
)

// AuthMiddleware validates a bearer JWT and stores the caller's user id in
// the request context. Requests never reach business logic with a missing,
// invalid or revoked token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization header"})
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid authorization header"})
			return
		}

		userID, jti, err := ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextJTIKey, jti)
		c.Next()
	}
}

// ParseToken verifies an HS256 token and returns its subject user id and jti.
func ParseToken(tokenStr string) (uint, string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// only accept HMAC signing
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errInvalidToken
	}

	jti, _ := claims["jti"].(string)
	if tokenstore.IsRevoked(jti) {
		return 0, "", errRevokedToken
	}

	var userIDStr string
	if sub, ok := claims["sub"].(string); ok {
		userIDStr = sub
	} else if subf, ok := claims["sub"].(float64); ok {
		// jwt lib may parse numeric subjects as float64
		userIDStr = strconv.Itoa(int(subf))
	}
	uid, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil || uid == 0 {
		return 0, "", errInvalidToken
	}
	return uint(uid), jti, nil
}

// CurrentUserID reads the authenticated user id set by AuthMiddleware.
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(ContextUserIDKey)
	uid, _ := v.(uint)
	return uid
}

type authError string

func (e authError) Error() string { return string(e) }

const (
	errInvalidToken = authError("invalid token")
	errRevokedToken = authError("token has been revoked")
)
