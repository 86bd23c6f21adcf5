package handler

import (
	"net/http"
	"time"

	"freightquote/pkg/database"
	"freightquote/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck reports service liveness. Passing ?check=db also pings the
// database and reports its status.
func (h *Handler) HealthCheck(c echo.Context) error {
	response := echo.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	if c.QueryParam("check") == "db" {
		dbStatus := "ok"
		db := database.GetDB()
		if db == nil {
			dbStatus = "unavailable"
		} else if sqlDB, err := db.DB(); err != nil {
			dbStatus = "error"
		} else if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			logger.FromContext(c).Error("Database ping failed", zap.Error(err))
			dbStatus = "error"
		}
		response["database"] = dbStatus
		if dbStatus != "ok" {
			return c.JSON(http.StatusServiceUnavailable, response)
		}
	}

	return c.JSON(http.StatusOK, response)
}
