package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness and database connectivity
type HealthHandler struct {
	BaseHandler
	db      *gorm.DB
	version string
	started time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
		started: time.Now(),
	}
}

// HealthResponse reports the service health
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		Version:  h.version,
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Database: "ok",
	}

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
		}
	}

	h.Success(c, resp)
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Check)
}
