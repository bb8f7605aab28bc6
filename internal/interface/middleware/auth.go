package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/pkg/helpers"
	"github.com/oksasatya/carehome-admin/pkg/response"
)

const (
	CtxIdentityKey    = "identity"
	CtxUserIDKey      = "userID"
	AccessTokenCookie = "access_token"
)

// Auth validates the identity token from the Authorization header or the
// access_token cookie. On success it stores the caller's entity.Identity and
// user id in the Gin context. An unrecognised role claim is kept as
// entity.RoleNone rather than rejected.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}

		id := entity.Identity{ID: claims.CallerID(), Role: entity.ParseRole(claims.Role)}
		c.Set(CtxIdentityKey, id)
		c.Set(CtxUserIDKey, id.ID)
		c.Next()
	}
}

// accessToken prefers a Bearer header over the cookie.
func accessToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	tok, err := c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return tok
}

// IdentityFrom returns the caller stored by Auth. Requests that did not pass
// through Auth get the zero Identity, whose role is entity.RoleNone.
func IdentityFrom(c *gin.Context) entity.Identity {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return entity.Identity{}
	}
	id, _ := v.(entity.Identity)
	return id
}
