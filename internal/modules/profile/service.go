package profile

import (
	"errors"
	"strings"
	"time"

	"github.com/linkdeck/core/internal/models"
	"github.com/linkdeck/core/internal/modules/link"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Public resolves a username to the anonymous page view. Disabled accounts
// are indistinguishable from missing ones.
func (s *Service) Public(username string, asOf time.Time) (*PublicProfile, error) {
	var u models.UserModel
	err := s.db.Where("username = ? AND is_active = ?", strings.ToLower(username), true).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var links []models.LinkModel
	if err := s.db.Where("user_id = ?", u.ID).
		Order("created_at ASC").Find(&links).Error; err != nil {
		return nil, err
	}

	return &PublicProfile{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		BioHTML:     renderBio(u.Bio),
		Avatar:      u.Avatar,
		Theme:       u.Theme,
		SocialLinks: u.SocialLinks,
		Links:       link.VisibleOrder(links, asOf),
	}, nil
}

func (s *Service) Get(userID string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update applies a partial profile edit and returns the stored record.
func (s *Service) Update(userID string, dto *UpdateProfileDTO) (*models.UserModel, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.DisplayName != nil {
		name, err := ValidateDisplayName(*dto.DisplayName)
		if err != nil {
			return nil, err
		}
		updates["display_name"] = name
	}
	if dto.Bio != nil {
		bio, err := validateBio(*dto.Bio)
		if err != nil {
			return nil, err
		}
		updates["bio"] = bio
	}
	if dto.Avatar != nil {
		avatar, err := validateAvatar(*dto.Avatar)
		if err != nil {
			return nil, err
		}
		updates["avatar"] = avatar
	}
	if dto.Theme != nil {
		updates["theme"] = *dto.Theme
	}
	if dto.SocialLinks != nil {
		updates["social_links"] = *dto.SocialLinks
	}

	if len(updates) == 0 {
		return u, nil
	}
	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// ChangeUsername renames the public handle. Uniqueness is checked inside a
// transaction; the unique index backstops concurrent claims.
func (s *Service) ChangeUsername(userID, raw string) (*models.UserModel, error) {
	username, err := NormalizeUsername(raw)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserModel{}).
			Where("username = ? AND id <> ?", username, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		return tx.Model(&models.UserModel{}).
			Where("id = ?", userID).
			Update("username", username).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID)
}
