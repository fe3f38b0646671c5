package models

import "time"

// LinkModel stores one outbound link owned by exactly one user.
//
// Order is the tie-break position among non-pinned links on the public page.
// It is assigned append-to-end at creation and relabelled 0..n-1 by reorder;
// the store does not enforce uniqueness, gaps after deletes are permitted.
type LinkModel struct {
	Base
	UserID    string     `json:"userId"    gorm:"index:idx_links_user_order,priority:1;not null"`
	Title     string     `json:"title"     gorm:"size:100;not null"`
	URL       string     `json:"url"       gorm:"type:text;not null"`
	Icon      string     `json:"icon"      gorm:"default:link"`
	Order     int        `json:"order"     gorm:"column:order;index:idx_links_user_order,priority:2;default:0"`
	IsActive  bool       `json:"isActive"  gorm:"default:true"`
	IsPinned  bool       `json:"isPinned"  gorm:"default:false"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Clicks    int64      `json:"clicks"    gorm:"default:0"`
}

func (LinkModel) TableName() string { return "links" }

// VisibleAt reports whether the link is publicly visible at the given time:
// it must be active and asOf must fall inside the [StartDate, EndDate]
// window, each bound open-ended when nil. Owner visibility is unconditional.
func (l LinkModel) VisibleAt(asOf time.Time) bool {
	if !l.IsActive {
		return false
	}
	if l.StartDate != nil && asOf.Before(*l.StartDate) {
		return false
	}
	if l.EndDate != nil && asOf.After(*l.EndDate) {
		return false
	}
	return true
}
