package link

import "errors"

type CreateLinkDTO struct {
	Title     string  `json:"title" binding:"required"`
	URL       string  `json:"url"   binding:"required"`
	Icon      string  `json:"icon"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// UpdateLinkDTO distinguishes omitted fields (nil) from supplied ones.
// StartDate/EndDate take a timestamp string; an explicit empty string clears
// the bound. An explicit empty Icon resets the link to the default icon.
type UpdateLinkDTO struct {
	Title     *string `json:"title"`
	URL       *string `json:"url"`
	Icon      *string `json:"icon"`
	IsActive  *bool   `json:"isActive"`
	IsPinned  *bool   `json:"isPinned"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

type ReorderDTO struct {
	LinkIDs []string `json:"linkIds" binding:"required"`
}

// LinkStats is the owner's per-link click summary.
type LinkStats struct {
	LinkID      string `json:"linkId"`
	Title       string `json:"title"`
	Clicks      int64  `json:"clicks"`
	IsActive    bool   `json:"isActive"`
	EventClicks int64  `json:"eventClicks"`
}

// DailyCount is one day of tracked clicks for a link.
type DailyCount struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// ErrLinkNotFound is returned when a link does not exist under the required
// owner scope.
var ErrLinkNotFound = errors.New("link not found")

// ValidationError marks rejected caller input; the transport maps it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func errValidation(reason string) error { return &ValidationError{Reason: reason} }
