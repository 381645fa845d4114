package middleware

import (
	"net/http"

	"dealership/internal/model"
	"dealership/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthUserKey is the context key under which the resolved caller identity
// is stored.
const AuthUserKey = "authUser"

// CookieAuthMiddleware resolves the caller identity from the auth cookie.
// It fails closed: requests without a valid, unexpired credential are
// rejected with 401 and never reach the handlers.
func CookieAuthMiddleware(jwtUtil *utils.JWTUtil, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(AuthUserKey, claims.User)
		c.Next()
	}
}

// GetAuthUser returns the identity the auth middleware attached to the
// request context.
func GetAuthUser(c *gin.Context) (model.AuthUser, bool) {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return model.AuthUser{}, false
	}
	user, ok := val.(model.AuthUser)
	return user, ok
}
