package admin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linkdeck/core/internal/middleware"
	pkgcron "github.com/linkdeck/core/internal/pkg/cron"
	"github.com/linkdeck/core/internal/pkg/pagination"
	"github.com/linkdeck/core/internal/pkg/response"
)

type Handler struct {
	svc   *Service
	sched *pkgcron.Scheduler
}

func NewHandler(svc *Service, sched *pkgcron.Scheduler) *Handler {
	return &Handler{svc: svc, sched: sched}
}

// RegisterRoutes mounts the admin surface. Every route requires an active
// admin account, enforced by adminMW.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	g := rg.Group("/admin", authMW, adminMW)

	g.GET("/stats", h.stats)
	g.GET("/users", h.listUsers)
	g.GET("/users/:id", h.getUser)
	g.PUT("/users/:id/toggle-admin", h.toggleAdmin)
	g.PUT("/users/:id/toggle-status", h.toggleStatus)
	g.DELETE("/users/:id", h.deleteUser)

	g.GET("/cron", h.listCronJobs)
	g.POST("/cron/:name/run", h.runCronJob)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, page, err := h.svc.ListUsers(pagination.FromContext(c), c.Query("search"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, users, page)
}

func (h *Handler) getUser(c *gin.Context) {
	u, err := h.svc.GetUser(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) toggleAdmin(c *gin.Context) {
	u, err := h.svc.ToggleAdmin(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) toggleStatus(c *gin.Context) {
	u, err := h.svc.ToggleStatus(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listCronJobs(c *gin.Context) {
	response.OK(c, h.sched.List())
}

func (h *Handler) runCronJob(c *gin.Context) {
	if err := h.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.OK(c, gin.H{"triggered": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.NotFoundMsg(c, "user not found")
	case errors.Is(err, ErrSelfTarget):
		response.ForbiddenMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
