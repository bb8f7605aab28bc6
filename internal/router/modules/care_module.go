package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/carehome-admin/internal/interface/http"
)

// CareModule wires the caller views, the schedule and the insight endpoints.
// Protected: GET /api/me, /api/me/menu, /api/me/residents, /api/me/schedule,
// /api/schedule, /api/stats/care-levels, /api/residents/directory
type CareModule struct {
	Guard   Guard
	Me      *handlers.MeHandler
	Insight *handlers.InsightHandler
}

func NewCareModule(g Guard, me *handlers.MeHandler, insight *handlers.InsightHandler) *CareModule {
	return &CareModule{Guard: g, Me: me, Insight: insight}
}

func (m *CareModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Group(rg)
	{
		auth.GET("/me", m.Me.Me)
		auth.GET("/me/menu", m.Me.Menu)
		auth.GET("/me/residents", m.Me.MyResidents)
		auth.GET("/me/schedule", m.Me.MySchedule)
		auth.GET("/schedule", m.Me.Schedule)
		auth.GET("/stats/care-levels", m.Insight.CareLevels)
		auth.GET("/residents/directory", m.Insight.Directory)
	}
}
