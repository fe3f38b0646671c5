package profile

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkdeck/core/internal/middleware"
	"github.com/linkdeck/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/profile")

	g.GET("/me", authMW, h.me)
	g.PUT("", authMW, h.update)
	g.PUT("/username", authMW, h.changeUsername)

	// Public page payload, registered last so the static siblings above win.
	g.GET("/:username", h.public)
}

// GET /profile/:username
func (h *Handler) public(c *gin.Context) {
	p, err := h.svc.Public(c.Param("username"), time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

// GET /profile/me
func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, u)
}

// PUT /profile
func (h *Handler) update(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Update(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, u)
}

// PUT /profile/username
func (h *Handler) changeUsername(c *gin.Context) {
	var dto ChangeUsernameDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.ChangeUsername(middleware.CurrentUserID(c), dto.Username)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, ve.Reason)
	case errors.Is(err, ErrProfileNotFound):
		response.NotFoundMsg(c, "profile not found")
	case errors.Is(err, ErrUsernameTaken):
		response.Conflict(c, "username already taken")
	default:
		response.InternalError(c, err)
	}
}
