package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/mirastore/catalog_api/internal/utils"
	"github.com/mirastore/catalog_api/pkg/catalogapi"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	db       *sqlx.DB
	upstream *catalogapi.Client
}

// NewHealthHandler creates a new HealthHandler. db is nil when the service
// runs against the local file store.
func NewHealthHandler(db *sqlx.DB, upstream *catalogapi.Client) *HealthHandler {
	return &HealthHandler{db: db, upstream: upstream}
}

// GetHealth responds with service, database and upstream status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	dbStatus := "local"
	if h.db != nil {
		dbStatus = "connected"
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			dbStatus = "disconnected"
		}
	}

	upstreamStatus := "not_configured"
	if h.upstream.Available() {
		upstreamStatus = "configured"
		if _, err := h.upstream.GetCategories(c.Request.Context()); err != nil {
			upstreamStatus = "disconnected"
		}
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"database": gin.H{
			"status": dbStatus,
		},
		"upstream": gin.H{
			"status": upstreamStatus,
		},
	})
}
