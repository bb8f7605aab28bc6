package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/carehome-admin/internal/application"
	"github.com/oksasatya/carehome-admin/pkg/response"
)

type CareLevelSource interface {
	CareLevels(ctx context.Context) (application.CareLevelStats, error)
}

type DirectorySearcher interface {
	Search(ctx context.Context, q string, size int) ([]application.DirectoryEntry, error)
}

// InsightHandler serves the care-level chart and the resident directory.
type InsightHandler struct {
	Stats    CareLevelSource
	Searcher DirectorySearcher
	Logger   *logrus.Logger
}

func NewInsightHandler(stats CareLevelSource, dir DirectorySearcher, logger *logrus.Logger) *InsightHandler {
	return &InsightHandler{Stats: stats, Searcher: dir, Logger: logger}
}

// CareLevels GET /api/stats/care-levels
func (h *InsightHandler) CareLevels(c *gin.Context) {
	out, err := h.Stats.CareLevels(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "care levels", nil)
}

// Directory GET /api/residents/directory?q=&size=
func (h *InsightHandler) Directory(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Searcher.Search(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("directory search failed")
		}
		response.Error[any](c, http.StatusBadGateway, "directory unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "directory", nil)
}
