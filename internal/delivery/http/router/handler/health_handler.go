package handler

import (
	"context"
	"net/http"
	"time"

	"authd/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports service liveness and the database connection state.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check answers 200 regardless; the body carries the database state.
func (h *HealthHandler) Check(c echo.Context) error {
	database := "connected"

	sqlDB, err := h.db.DB()
	if err != nil {
		database = "disconnected"
	} else {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			database = "disconnected"
		}
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": database,
	}, "Service is healthy")
}
