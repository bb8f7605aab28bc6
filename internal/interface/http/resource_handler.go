package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/carehome-admin/internal/application"
	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/interface/middleware"
	"github.com/oksasatya/carehome-admin/pkg/response"
)

// ResourceService is the role-scoped CRUD surface of one entity kind.
type ResourceService[T any] interface {
	List(ctx context.Context, caller entity.Identity, req queryfilter.Request) (application.Page[T], error)
	Get(ctx context.Context, caller entity.Identity, id string) (*T, error)
	Create(ctx context.Context, caller entity.Identity, in *T) error
	Update(ctx context.Context, caller entity.Identity, id string, in *T) error
	Delete(ctx context.Context, caller entity.Identity, id string) error
}

// ResourceHandler serves list, get, create, update and delete for one kind.
// P is the request body bound on writes.
type ResourceHandler[T any, P payload[T]] struct {
	Svc    ResourceService[T]
	Name   string
	Logger *logrus.Logger
}

func NewResourceHandler[T any, P payload[T]](svc ResourceService[T], name string, logger *logrus.Logger) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{Svc: svc, Name: name, Logger: logger}
}

// List GET /api/<resource>?page=&<filters>
func (h *ResourceHandler[T, P]) List(c *gin.Context) {
	req := queryfilter.RequestFromValues(c.Request.URL.Query())
	page, err := h.Svc.List(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Items, h.Name+" list", response.PageMeta{
		Page: page.Page, Limit: page.Limit, Total: page.Total,
	})
}

// Get GET /api/<resource>/:id
func (h *ResourceHandler[T, P]) Get(c *gin.Context) {
	v, err := h.Svc.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, h.Name, nil)
}

// Create POST /api/<resource>
func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	if err := h.Svc.Create(c.Request.Context(), middleware.IdentityFrom(c), in); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, in, h.Name+" created", nil)
}

// Update PUT /api/<resource>/:id
func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	if err := h.Svc.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), in); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, in, h.Name+" updated", nil)
}

// Delete DELETE /api/<resource>/:id
func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, h.Name+" deleted", nil)
}

func (h *ResourceHandler[T, P]) bind(c *gin.Context) (*T, bool) {
	var req P
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return nil, false
	}
	in, err := req.toEntity()
	if err != nil {
		respondError(c, h.Logger, err)
		return nil, false
	}
	return in, true
}

// Register mounts the five routes on rg under path.
func (h *ResourceHandler[T, P]) Register(rg *gin.RouterGroup, path string) {
	g := rg.Group(path)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
