package link

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkdeck/core/internal/middleware"
	"github.com/linkdeck/core/internal/pkg/clicksink"
	"github.com/linkdeck/core/internal/pkg/response"
)

type Handler struct {
	svc  *Service
	sink *clicksink.Sink
}

func NewHandler(svc *Service, sink *clicksink.Sink) *Handler {
	return &Handler{svc: svc, sink: sink}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/links")

	// Public: invoked by anonymous profile visitors.
	g.POST("/:id/click", h.click)

	a := g.Group("", authMW)
	a.GET("/mine", h.listMine)
	a.GET("/stats", h.stats)
	a.GET("/:id/clicks", h.dailyClicks)
	a.POST("", h.create)
	a.PUT("/reorder", h.reorder)
	a.PUT("/:id", h.update)
	a.PUT("/:id/toggle-active", h.toggleActive)
	a.PUT("/:id/toggle-pin", h.togglePinned)
	a.DELETE("/:id", h.delete)
}

// GET /links/mine
func (h *Handler) listMine(c *gin.Context) {
	links, err := h.svc.ListMine(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, links)
}

// POST /links
func (h *Handler) create(c *gin.Context) {
	var dto CreateLinkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	l, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, l)
}

// PUT /links/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateLinkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	l, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, l)
}

// DELETE /links/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

// PUT /links/reorder
func (h *Handler) reorder(c *gin.Context) {
	var dto ReorderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Reorder(middleware.CurrentUserID(c), dto.LinkIDs); err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

// PUT /links/:id/toggle-active
func (h *Handler) toggleActive(c *gin.Context) {
	l, err := h.svc.ToggleActive(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, l)
}

// PUT /links/:id/toggle-pin
func (h *Handler) togglePinned(c *gin.Context) {
	l, err := h.svc.TogglePinned(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, l)
}

// POST /links/:id/click (anonymous)
func (h *Handler) click(c *gin.Context) {
	l, err := h.svc.RecordClick(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.sink.Record(c.Request.Context(), clicksink.Event{
		UserID:  l.UserID,
		LinkID:  l.ID,
		IP:      c.ClientIP(),
		UA:      c.Request.UserAgent(),
		Referer: c.GetHeader("Referer"),
		At:      time.Now(),
	})
	response.OK(c, gin.H{"message": "click tracked"})
}

// GET /links/stats
func (h *Handler) stats(c *gin.Context) {
	rows, err := h.svc.Stats(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, rows)
}

// GET /links/:id/clicks?days=N
func (h *Handler) dailyClicks(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	rows, err := h.svc.DailyClicks(middleware.CurrentUserID(c), c.Param("id"), days)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, rows)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, ve.Reason)
	case errors.Is(err, ErrLinkNotFound):
		response.NotFoundMsg(c, "link not found")
	default:
		response.InternalError(c, err)
	}
}
