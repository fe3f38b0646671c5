package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkdeck/core/internal/middleware"
	"github.com/linkdeck/core/internal/models"
	"github.com/linkdeck/core/internal/modules/profile"
	"github.com/linkdeck/core/internal/pkg/response"
	"github.com/linkdeck/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterDTO struct {
	Email       string `json:"email"       binding:"required,email"`
	Username    string `json:"username"    binding:"required"`
	Password    string `json:"password"    binding:"required,min=6"`
	DisplayName string `json:"displayName"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  *models.UserModel `json:"user"`
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// loginFailureDelay slows down credential guessing a little.
const loginFailureDelay = time.Second

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Register(dto *RegisterDTO, ip, ua string) (string, *models.UserModel, error) {
	username, err := profile.NormalizeUsername(dto.Username)
	if err != nil {
		return "", nil, err
	}
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	displayName, err := profile.ValidateDisplayName(dto.DisplayName)
	if err != nil {
		return "", nil, err
	}
	if displayName == "" {
		displayName = username
	}

	u := models.UserModel{
		Email:       email,
		Password:    string(hash),
		Username:    username,
		DisplayName: displayName,
		IsActive:    true,
		Theme:       models.DefaultTheme(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserModel{}).
			Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		if err := tx.Model(&models.UserModel{}).
			Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return profile.ErrUsernameTaken
		}
		return tx.Create(&u).Error
	})
	if err != nil {
		return "", nil, err
	}

	token, _, err := session.Issue(s.db, u.ID, ip, ua, session.DefaultTTL)
	return token, &u, err
}

func (s *Service) Login(email, password, ip, ua string) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(loginFailureDelay)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(loginFailureDelay)
		return "", nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return "", nil, ErrAccountDisabled
	}

	token, _, err := session.Issue(s.db, u.ID, ip, ua, session.DefaultTTL)
	return token, &u, err
}

func (s *Service) Me(userID string) (*models.UserModel, error) {
	var u models.UserModel
	return &u, s.db.First(&u, "id = ?", userID).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")

	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.POST("/sign-out", authMW, h.signOut)
	a.GET("/me", authMW, h.me)
	a.GET("/sessions", authMW, h.listSessions)
	a.DELETE("/sessions", authMW, h.revokeOtherSessions)
	a.DELETE("/sessions/:id", authMW, h.revokeSession)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, u, err := h.svc.Register(&dto, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, loginResponse{Token: token, User: u})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, u, err := h.svc.Login(dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, loginResponse{Token: token, User: u})
}

func (h *Handler) signOut(c *gin.Context) {
	sid := middleware.CurrentSessionID(c)
	if sid != "" {
		if err := session.Revoke(h.svc.db, middleware.CurrentUserID(c), sid); err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			response.InternalError(c, err)
			return
		}
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.Me(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) listSessions(c *gin.Context) {
	sessions, err := session.ListActive(h.svc.db, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, sessions)
}

func (h *Handler) revokeSession(c *gin.Context) {
	err := session.Revoke(h.svc.db, middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundMsg(c, "session not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) revokeOtherSessions(c *gin.Context) {
	err := session.RevokeAllExcept(h.svc.db, middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var ve *profile.ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, ve.Reason)
	case errors.Is(err, ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, profile.ErrUsernameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, ErrAccountDisabled):
		response.ForbiddenMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
