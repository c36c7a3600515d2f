package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookstore/models"
	"bookstore/services"
	"bookstore/utils"
)

const claimsKey = "claims"

type claimsCtxKey struct{}

// Authenticator turns a raw bearer token into claims.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*utils.Claims, error)
}

// AuthMiddleware accepts a request only with a valid "Authorization: Bearer"
// token and stores the decoded claims on both the gin and the request
// context. Claims come from the token itself; there is no credential-store
// lookup, only the revocation check inside auth.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), raw)
		switch {
		case err == nil:
		case errors.Is(err, utils.ErrExpiredToken):
			abort(c, http.StatusUnauthorized, "Token has expired. Please log in again.")
			return
		case errors.Is(err, services.ErrRevokedToken):
			abort(c, http.StatusUnauthorized, "Token has been revoked. Please log in again.")
			return
		default:
			abort(c, http.StatusForbidden, "Invalid token")
			return
		}

		c.Set(claimsKey, claims)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), claimsCtxKey{}, claims))
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok || claims.Role != models.RoleAdmin {
			abort(c, http.StatusForbidden, "Access denied: admin only")
			return
		}
		c.Next()
	}
}

func Claims(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*utils.Claims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
