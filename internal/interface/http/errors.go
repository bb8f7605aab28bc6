package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/carehome-admin/internal/application"
	"github.com/oksasatya/carehome-admin/pkg/response"
	"github.com/oksasatya/carehome-admin/pkg/validation"
)

// respondError maps service errors onto HTTP statuses. Anything unmapped is
// logged and reported as 500 without details.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *application.ValidationError
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, application.ErrConflict):
		response.Error[any](c, http.StatusConflict, "already exists", err.Error())
	case errors.As(err, &ve):
		field := ve.Field
		if field == "" {
			field = "payload"
		}
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{field: ve.Message})
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"path":       c.Request.URL.Path,
				"request_id": c.GetString("request_id"),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
