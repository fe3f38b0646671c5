package profile

import (
	"errors"

	"github.com/linkdeck/core/internal/models"
)

// UpdateProfileDTO carries a partial profile update. Nil fields are left
// untouched; an empty string clears the field.
type UpdateProfileDTO struct {
	DisplayName *string             `json:"displayName"`
	Bio         *string             `json:"bio"`
	Avatar      *string             `json:"avatar"`
	Theme       *models.Theme       `json:"theme"`
	SocialLinks *models.SocialLinks `json:"socialLinks"`
}

type ChangeUsernameDTO struct {
	Username string `json:"username" binding:"required"`
}

// PublicProfile is the anonymous view of a user page: account fields the
// visitor may see plus the visible links in display order.
type PublicProfile struct {
	Username    string             `json:"username"`
	DisplayName string             `json:"displayName"`
	Bio         string             `json:"bio"`
	BioHTML     string             `json:"bioHtml,omitempty"`
	Avatar      string             `json:"avatar"`
	Theme       models.Theme       `json:"theme"`
	SocialLinks models.SocialLinks `json:"socialLinks"`
	Links       []models.LinkModel `json:"links"`
}

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

// ValidationError marks a rejected profile field so handlers can answer 400
// instead of 500.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func errValidation(reason string) error { return &ValidationError{Reason: reason} }
