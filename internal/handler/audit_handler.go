package handler

import (
	"net/http"
	"strconv"

	"freightquote/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// ListAuditLogs returns the audit trail newest first. Supports limit and
// offset query parameters; limit is capped.
func (h *Handler) ListAuditLogs(c echo.Context) error {
	limit := defaultAuditPageSize
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid limit"})
		}
		limit = n
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}

	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid offset"})
		}
		offset = n
	}

	logs, err := h.Store.GetAuditLogs(c.Request().Context(), limit, offset)
	if err != nil {
		logger.FromContext(c).Error("Failed to list audit logs", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to list audit logs"})
	}
	return c.JSON(http.StatusOK, logs)
}
