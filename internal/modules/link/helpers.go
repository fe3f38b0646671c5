package link

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	maxTitleLen = 100
	defaultIcon = "link"
)

// validateTitle trims and bounds the title.
func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", errValidation("title is required")
	}
	if len([]rune(title)) > maxTitleLen {
		return "", errValidation(fmt.Sprintf("title must be at most %d characters", maxTitleLen))
	}
	return title, nil
}

// validateURL requires an absolute URL with a host.
func validateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", errValidation("a valid URL is required")
	}
	return trimmed, nil
}

// scheduleDateLayouts accepts RFC3339 and the HTML datetime-local format the
// dashboard submits.
var scheduleDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseScheduleDate maps "" to nil (cleared bound) and otherwise requires a
// parseable timestamp.
func parseScheduleDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	for _, layout := range scheduleDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t, nil
		}
	}
	return nil, errValidation(fmt.Sprintf("invalid date: %q", raw))
}

// validateWindow rejects a start bound after the end bound.
func validateWindow(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return errValidation("startDate must not be after endDate")
	}
	return nil
}
