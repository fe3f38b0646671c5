package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkdeck/core/internal/middleware"
	"github.com/linkdeck/core/internal/modules/admin"
	"github.com/linkdeck/core/internal/modules/auth"
	"github.com/linkdeck/core/internal/modules/health"
	"github.com/linkdeck/core/internal/modules/link"
	"github.com/linkdeck/core/internal/modules/profile"
	pkgredis "github.com/linkdeck/core/internal/pkg/redis"
	"github.com/linkdeck/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)
	adminMW := middleware.AdminOnly(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "linkdeck-core",
		"version": "1.0.0",
	}

	// OptionalAuth must run before the limiter and the idempotence guard so
	// both can tell signed-in traffic apart from anonymous traffic.
	r.Use(middleware.OptionalAuth(db))
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	api := r.Group("/api")
	// Public profile pages are the hot path; short shared cache for
	// anonymous visitors only.
	api.Use(middleware.HTTPCache(rc.Raw(), middleware.HTTPCacheOptions{
		TTL:          15 * time.Second,
		Disable:      a.cfg.IsDev(),
		PathPrefixes: []string{"/api/profile/"},
	}))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	api.GET("/clean_cache", authMW, adminMW, func(c *gin.Context) {
		deleted, err := middleware.PurgeHTTPCache(c.Request.Context(), rc.Raw())
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.OK(c, gin.H{"deleted": deleted})
	})

	health.NewHandler(db, rc).RegisterRoutes(api)

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	profile.NewHandler(profile.NewService(db)).RegisterRoutes(api, authMW)
	link.NewHandler(link.NewService(db), a.sink).RegisterRoutes(api, authMW)
	admin.NewHandler(admin.NewService(db), a.sched).RegisterRoutes(api, authMW, adminMW)
}
