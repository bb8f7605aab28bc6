package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/carehome-admin/internal/domain/access"
	"github.com/oksasatya/carehome-admin/internal/interface/middleware"
	"github.com/oksasatya/carehome-admin/pkg/helpers"
)

// Guard is the middleware chain in front of every authenticated route:
// token check, route access table, then a per-user request budget.
type Guard struct {
	JWT       *helpers.JWTManager
	Tables    *access.Tables
	Redis     *redis.Client
	PerMinute int
}

func (g Guard) Group(rg *gin.RouterGroup) *gin.RouterGroup {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(g.JWT), middleware.RequireAccess(g.Tables))
	if g.PerMinute > 0 {
		auth.Use(middleware.RateLimit(g.Redis, g.PerMinute, time.Minute, middleware.KeyByUserID(), nil))
	}
	return auth
}
