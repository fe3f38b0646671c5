package health

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkdeck/core/internal/pkg/response"
	redisc "github.com/linkdeck/core/internal/pkg/redis"
	"gorm.io/gorm"
)

type Handler struct {
	db      *gorm.DB
	rc      *redisc.Client
	started time.Time
}

func NewHandler(db *gorm.DB, rc *redisc.Client) *Handler {
	return &Handler{db: db, rc: rc, started: time.Now()}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	dbOK := false
	if sqlDB, err := h.db.DB(); err == nil {
		dbOK = sqlDB.PingContext(c.Request.Context()) == nil
	}

	redisOK := false
	if h.rc != nil {
		redisOK = h.rc.Raw().Ping(c.Request.Context()).Err() == nil
	}

	status := "ok"
	if !dbOK {
		status = "degraded"
	}
	response.OK(c, gin.H{
		"status": status,
		"db":     dbOK,
		"redis":  redisOK,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
