package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/interface/api/rest/response"
)

const pingTimeout = 2 * time.Second

type (
	HealthController struct {
		logger  *zap.Logger
		db      ports.Pinger
		started time.Time
	}
	Health struct {
		Status   string  `json:"status"`
		Uptime   float64 `json:"uptime"`
		Database string  `json:"database"`
	}
)

func NewHealthController(r gin.IRouter, logger *zap.Logger, db ports.Pinger, metrics http.Handler) *HealthController {
	hc := &HealthController{
		logger:  logger,
		db:      db,
		started: time.Now(),
	}

	r.GET(RouteHealth, hc.HealthHandler)
	r.GET(RouteMetrics, gin.WrapH(metrics))

	return hc
}

func (hc *HealthController) HealthHandler(c *gin.Context) {
	h := Health{
		Status:   "ok",
		Uptime:   time.Since(hc.started).Seconds(),
		Database: "connected",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()
	if err := hc.db.Ping(ctx); err != nil {
		hc.logger.Warn("health check: database unreachable", zap.Error(err))
		h.Database = "disconnected"
	}

	response.OKWithMessage(c, http.StatusOK, "Student Management API is healthy", h)
}
