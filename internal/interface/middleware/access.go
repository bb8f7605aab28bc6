package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/carehome-admin/internal/domain/access"
	"github.com/oksasatya/carehome-admin/pkg/response"
)

// RequireAccess rejects callers whose role is not listed for the longest
// route prefix covering the request path. Must run after Auth.
func RequireAccess(tables *access.Tables) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if !tables.CanAccess(c.Request.URL.Path, id.Role) {
			response.Error[any](c, http.StatusForbidden, "access denied", gin.H{"role": id.Role.String()})
			c.Abort()
			return
		}
		c.Next()
	}
}
