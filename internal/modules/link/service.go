package link

import (
	"errors"
	"fmt"
	"time"

	"github.com/linkdeck/core/internal/models"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// ListMine returns all of the owner's links in dashboard order.
func (s *Service) ListMine(ownerID string) ([]models.LinkModel, error) {
	var links []models.LinkModel
	if err := s.db.Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return OwnerOrder(links), nil
}

// GetByID loads one link scoped to its owner.
func (s *Service) GetByID(ownerID, id string) (*models.LinkModel, error) {
	var l models.LinkModel
	if err := s.db.First(&l, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Create validates the input and appends the link to the end of the owner's
// set. Count and insert run in one transaction so concurrent creates keep the
// append-to-end invariant.
func (s *Service) Create(ownerID string, dto *CreateLinkDTO) (*models.LinkModel, error) {
	title, err := validateTitle(dto.Title)
	if err != nil {
		return nil, err
	}
	rawURL, err := validateURL(dto.URL)
	if err != nil {
		return nil, err
	}
	start, err := parseScheduleDate(deref(dto.StartDate))
	if err != nil {
		return nil, err
	}
	end, err := parseScheduleDate(deref(dto.EndDate))
	if err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	icon := dto.Icon
	if icon == "" {
		icon = defaultIcon
	}

	l := models.LinkModel{
		UserID:    ownerID,
		Title:     title,
		URL:       rawURL,
		Icon:      icon,
		IsActive:  true,
		IsPinned:  false,
		StartDate: start,
		EndDate:   end,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.LinkModel{}).
			Where("user_id = ?", ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		l.Order = int(count)
		return tx.Create(&l).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Update applies the supplied fields only; nil pointers leave the stored
// value untouched.
func (s *Service) Update(ownerID, id string, dto *UpdateLinkDTO) (*models.LinkModel, error) {
	l, err := s.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		title, err := validateTitle(*dto.Title)
		if err != nil {
			return nil, err
		}
		updates["title"] = title
		l.Title = title
	}
	if dto.URL != nil {
		rawURL, err := validateURL(*dto.URL)
		if err != nil {
			return nil, err
		}
		updates["url"] = rawURL
		l.URL = rawURL
	}
	if dto.Icon != nil {
		icon := *dto.Icon
		if icon == "" {
			icon = defaultIcon
		}
		updates["icon"] = icon
		l.Icon = icon
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
		l.IsActive = *dto.IsActive
	}
	if dto.IsPinned != nil {
		updates["is_pinned"] = *dto.IsPinned
		l.IsPinned = *dto.IsPinned
	}

	start, end := l.StartDate, l.EndDate
	if dto.StartDate != nil {
		if start, err = parseScheduleDate(*dto.StartDate); err != nil {
			return nil, err
		}
		updates["start_date"] = start
		l.StartDate = start
	}
	if dto.EndDate != nil {
		if end, err = parseScheduleDate(*dto.EndDate); err != nil {
			return nil, err
		}
		updates["end_date"] = end
		l.EndDate = end
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return l, nil
	}
	return l, s.db.Model(&models.LinkModel{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates).Error
}

// Delete removes the link. Remaining Order values keep their gaps until the
// next reorder.
func (s *Service) Delete(ownerID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.LinkModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// Reorder relabels the owner's links to the given sequence. The sequence
// must be an exact permutation of the owner's current link ids; anything
// else fails closed without touching the stored order. All position writes
// happen in one transaction so readers see either the old or the new order.
func (s *Service) Reorder(ownerID string, linkIDs []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var currentIDs []string
		if err := tx.Model(&models.LinkModel{}).
			Where("user_id = ?", ownerID).
			Pluck("id", &currentIDs).Error; err != nil {
			return err
		}
		if err := checkPermutation(linkIDs, currentIDs); err != nil {
			return err
		}
		for i, id := range linkIDs {
			if err := tx.Model(&models.LinkModel{}).
				Where("id = ? AND user_id = ?", id, ownerID).
				Update("order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// checkPermutation verifies that got is a duplicate-free rearrangement of want.
func checkPermutation(got, want []string) error {
	if len(got) != len(want) {
		return errValidation(fmt.Sprintf("expected %d link ids, got %d", len(want), len(got)))
	}
	seen := make(map[string]bool, len(want))
	for _, id := range want {
		seen[id] = true
	}
	for _, id := range got {
		if !seen[id] {
			return errValidation(fmt.Sprintf("unknown or duplicate link id: %s", id))
		}
		delete(seen, id)
	}
	return nil
}

// ToggleActive flips the active flag and returns the updated link.
func (s *Service) ToggleActive(ownerID, id string) (*models.LinkModel, error) {
	return s.toggle(ownerID, id, "is_active", func(l *models.LinkModel) {
		l.IsActive = !l.IsActive
	})
}

// TogglePinned flips the pinned flag and returns the updated link.
func (s *Service) TogglePinned(ownerID, id string) (*models.LinkModel, error) {
	return s.toggle(ownerID, id, "is_pinned", func(l *models.LinkModel) {
		l.IsPinned = !l.IsPinned
	})
}

func (s *Service) toggle(ownerID, id, column string, flip func(*models.LinkModel)) (*models.LinkModel, error) {
	l, err := s.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	flip(l)
	value := l.IsActive
	if column == "is_pinned" {
		value = l.IsPinned
	}
	return l, s.db.Model(&models.LinkModel{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update(column, value).Error
}

// RecordClick bumps the click counter with a single atomic UPDATE so that
// concurrent visitors never lose an increment, and returns the link so the
// caller can emit the analytics event. Looked up by id alone: this path is
// anonymous.
func (s *Service) RecordClick(id string) (*models.LinkModel, error) {
	res := s.db.Model(&models.LinkModel{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrLinkNotFound
	}

	var l models.LinkModel
	if err := s.db.First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// Stats returns the owner's per-link click totals, both the live counter and
// the number of recorded click events.
func (s *Service) Stats(ownerID string) ([]LinkStats, error) {
	var rows []LinkStats
	err := s.db.Model(&models.LinkModel{}).
		Select("links.id AS link_id, links.title, links.clicks, links.is_active, COUNT(click_events.id) AS event_clicks").
		Joins("LEFT JOIN click_events ON click_events.link_id = links.id AND click_events.deleted_at IS NULL").
		Where("links.user_id = ?", ownerID).
		Group("links.id, links.title, links.clicks, links.is_active, links.`order`").
		Order("links.`order` ASC").
		Scan(&rows).Error
	return rows, err
}

// DailyClicks returns the per-day click counts for one of the owner's links
// over the trailing window.
func (s *Service) DailyClicks(ownerID, id string, days int) ([]DailyCount, error) {
	if _, err := s.GetByID(ownerID, id); err != nil {
		return nil, err
	}
	if days <= 0 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []DailyCount
	err := s.db.Model(&models.ClickEventModel{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, COUNT(*) AS clicks").
		Where("link_id = ? AND created_at >= ?", id, since).
		Group("DATE_FORMAT(created_at, '%Y-%m-%d')").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
