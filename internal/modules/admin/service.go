package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/linkdeck/core/internal/models"
	"github.com/linkdeck/core/internal/pkg/pagination"
	"github.com/linkdeck/core/internal/pkg/response"
	"gorm.io/gorm"
)

const statsWindowDays = 30

// startOfDay returns midnight of t's day in t's own zone, matching the zone
// the database groups daily click rows by.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.UserModel{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.UserModel{}).
		Where("is_active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.LinkModel{}).Count(&stats.TotalLinks).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.LinkModel{}).
		Where("is_active = ?", true).Count(&stats.ActiveLinks).Error; err != nil {
		return nil, err
	}

	// Counter on links is the source of truth for totals; click_events may
	// trail behind the buffer or be trimmed by retention.
	var total struct{ Total int64 }
	if err := s.db.Model(&models.LinkModel{}).
		Select("COALESCE(SUM(clicks), 0) AS total").Scan(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalClicks = total.Total

	if err := s.db.Model(&models.ClickEventModel{}).
		Where("created_at >= ?", startOfDay(time.Now())).
		Count(&stats.ClicksToday).Error; err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -statsWindowDays)
	if err := s.db.Model(&models.ClickEventModel{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, COUNT(*) AS clicks").
		Where("created_at >= ?", since).
		Group("date").Order("date ASC").
		Scan(&stats.DailyClicks).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.UserModel{}).
		Select("users.id AS user_id, users.username, users.display_name, " +
			"COUNT(links.id) AS link_count, COALESCE(SUM(links.clicks), 0) AS total_clicks").
		Joins("LEFT JOIN links ON links.user_id = users.id AND links.deleted_at IS NULL").
		Group("users.id").
		Order("total_clicks DESC").
		Limit(10).
		Scan(&stats.TopUsers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// ListUsers returns one page of accounts, optionally filtered by a search
// term matched against email, username and display name.
func (s *Service) ListUsers(q pagination.Query, search string) ([]models.UserModel, response.Pagination, error) {
	query := s.db.Model(&models.UserModel{}).Order("created_at DESC")
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"email LIKE ? OR username LIKE ? OR display_name LIKE ?",
			like, like, like,
		)
	}

	var users []models.UserModel
	page, err := pagination.Paginate(query, q, &users)
	return users, page, err
}

func (s *Service) GetUser(id string) (*UserDetail, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	detail := &UserDetail{UserModel: u}
	if err := s.db.Where("user_id = ?", id).
		Order("`order` ASC").Find(&detail.Links).Error; err != nil {
		return nil, err
	}
	detail.LinkCount = int64(len(detail.Links))
	var total struct{ Total int64 }
	if err := s.db.Model(&models.LinkModel{}).
		Select("COALESCE(SUM(clicks), 0) AS total").
		Where("user_id = ?", id).Scan(&total).Error; err != nil {
		return nil, err
	}
	detail.TotalClicks = total.Total
	return detail, nil
}

// ToggleAdmin flips the admin flag. Admins cannot change their own flag so
// the last admin cannot lock everyone out by accident.
func (s *Service) ToggleAdmin(actorID, targetID string) (*models.UserModel, error) {
	return s.toggle(actorID, targetID, func(u *models.UserModel) (string, bool) {
		return "is_admin", !u.IsAdmin
	})
}

// ToggleStatus enables or disables an account. Disabling revokes nothing by
// itself; auth checks is_active on every request.
func (s *Service) ToggleStatus(actorID, targetID string) (*models.UserModel, error) {
	return s.toggle(actorID, targetID, func(u *models.UserModel) (string, bool) {
		return "is_active", !u.IsActive
	})
}

func (s *Service) toggle(actorID, targetID string, flip func(*models.UserModel) (string, bool)) (*models.UserModel, error) {
	if actorID == targetID {
		return nil, ErrSelfTarget
	}
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	column, value := flip(&u)
	if err := s.db.Model(&u).Update(column, value).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes an account and everything it owns.
func (s *Service) DeleteUser(actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfTarget
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().Delete(&models.UserModel{}, "id = ?", targetID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		if err := tx.Unscoped().
			Delete(&models.LinkModel{}, "user_id = ?", targetID).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Delete(&models.ClickEventModel{}, "user_id = ?", targetID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserSession{}, "user_id = ?", targetID).Error
	})
}
