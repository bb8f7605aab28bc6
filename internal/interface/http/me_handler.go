package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/carehome-admin/internal/application"
	"github.com/oksasatya/carehome-admin/internal/domain/access"
	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/interface/middleware"
	"github.com/oksasatya/carehome-admin/pkg/response"
)

// ResidentLister lists residents inside a caller's scope.
type ResidentLister interface {
	List(ctx context.Context, caller entity.Identity, req queryfilter.Request) (application.Page[entity.Resident], error)
}

// Scheduler builds week calendars from care routines.
type Scheduler interface {
	Mine(ctx context.Context, caller entity.Identity) ([]application.Calendar, error)
	Filtered(ctx context.Context, caller entity.Identity, staffID, roomID string) (application.Calendar, error)
}

// MeHandler serves caller-centric views.
type MeHandler struct {
	Tables    *access.Tables
	Residents ResidentLister
	Scheduler Scheduler
	Logger    *logrus.Logger
}

func NewMeHandler(tables *access.Tables, residents ResidentLister, schedule Scheduler, logger *logrus.Logger) *MeHandler {
	return &MeHandler{Tables: tables, Residents: residents, Scheduler: schedule, Logger: logger}
}

// Me GET /api/me
func (h *MeHandler) Me(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	response.Success(c, http.StatusOK, gin.H{"id": id.ID, "role": id.Role.String()}, "identity", nil)
}

// Menu GET /api/me/menu
func (h *MeHandler) Menu(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	response.Success(c, http.StatusOK, h.Tables.Menu(id.Role), "menu", nil)
}

// MyResidents GET /api/me/residents
func (h *MeHandler) MyResidents(c *gin.Context) {
	req := queryfilter.RequestFromValues(c.Request.URL.Query())
	page, err := h.Residents.List(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Items, "residents", response.PageMeta{
		Page: page.Page, Limit: page.Limit, Total: page.Total,
	})
}

// MySchedule GET /api/me/schedule
func (h *MeHandler) MySchedule(c *gin.Context) {
	cals, err := h.Scheduler.Mine(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cals, "schedule", nil)
}

// Schedule GET /api/schedule?staffId=|roomId=
func (h *MeHandler) Schedule(c *gin.Context) {
	cal, err := h.Scheduler.Filtered(c.Request.Context(), middleware.IdentityFrom(c), c.Query("staffId"), c.Query("roomId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cal, "schedule", nil)
}
