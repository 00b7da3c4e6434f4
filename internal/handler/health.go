package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports process and database health.
type HealthHandler struct {
	DB *sql.DB
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Check responds 200 when the database answers a ping, 503 otherwise.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status": "degraded",
			"db":     err.Error(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
