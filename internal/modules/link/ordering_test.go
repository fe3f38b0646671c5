package link

import (
	"testing"
	"time"

	"github.com/linkdeck/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkLink(title string, order int, active, pinned bool, start, end *time.Time) models.LinkModel {
	return models.LinkModel{
		Title:     title,
		URL:       "https://example.com/" + title,
		Order:     order,
		IsActive:  active,
		IsPinned:  pinned,
		StartDate: start,
		EndDate:   end,
	}
}

func titles(links []models.LinkModel) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Title)
	}
	return out
}

func TestVisibleOrderExcludesInactive(t *testing.T) {
	now := time.Now()
	links := []models.LinkModel{
		mkLink("a", 0, true, false, nil, nil),
		mkLink("b", 1, false, false, nil, nil),
		mkLink("c", 2, true, false, nil, nil),
	}

	got := VisibleOrder(links, now)
	assert.Equal(t, []string{"a", "c"}, titles(got))
}

func TestVisibleOrderExcludesOutsideWindowEvenIfActive(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	links := []models.LinkModel{
		mkLink("not-yet", 0, true, false, &future, nil),
		mkLink("expired", 1, true, false, nil, &past),
		mkLink("open", 2, true, false, &past, &future),
		mkLink("unbounded", 3, true, false, nil, nil),
	}

	got := VisibleOrder(links, now)
	assert.Equal(t, []string{"open", "unbounded"}, titles(got))
}

func TestVisibleOrderWindowBoundariesInclusive(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	l := mkLink("exact", 0, true, false, &now, &now)
	got := VisibleOrder([]models.LinkModel{l}, now)
	require.Len(t, got, 1)
}

func TestVisibleOrderPinnedFirst(t *testing.T) {
	now := time.Now()
	links := []models.LinkModel{
		mkLink("a", 0, true, false, nil, nil),
		mkLink("b", 1, true, true, nil, nil),
		mkLink("c", 2, true, false, nil, nil),
		mkLink("d", 3, true, true, nil, nil),
	}

	got := VisibleOrder(links, now)
	assert.Equal(t, []string{"b", "d", "a", "c"}, titles(got))
}

func TestVisibleOrderPinnedBeatsLowerOrder(t *testing.T) {
	now := time.Now()
	// A has the lower order value, but B is pinned: B must come first.
	links := []models.LinkModel{
		mkLink("A", 0, true, false, nil, nil),
		mkLink("B", 5, true, true, nil, nil),
	}

	got := VisibleOrder(links, now)
	assert.Equal(t, []string{"B", "A"}, titles(got))
}

func TestVisibleOrderStableOnEqualOrder(t *testing.T) {
	now := time.Now()
	links := []models.LinkModel{
		mkLink("first", 2, true, false, nil, nil),
		mkLink("second", 2, true, false, nil, nil),
		mkLink("third", 2, true, false, nil, nil),
	}

	got := VisibleOrder(links, now)
	assert.Equal(t, []string{"first", "second", "third"}, titles(got))
}

func TestVisibleOrderDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	links := []models.LinkModel{
		mkLink("z", 9, true, false, nil, nil),
		mkLink("a", 0, true, true, nil, nil),
	}

	_ = VisibleOrder(links, now)
	assert.Equal(t, []string{"z", "a"}, titles(links))
}

func TestOwnerOrderIgnoresVisibility(t *testing.T) {
	tomorrow := time.Now().Add(24 * time.Hour)
	links := []models.LinkModel{
		mkLink("scheduled", 0, true, false, &tomorrow, nil),
		mkLink("inactive", 1, false, false, nil, nil),
		mkLink("live", 2, true, false, nil, nil),
	}

	owner := OwnerOrder(links)
	assert.Equal(t, []string{"scheduled", "inactive", "live"}, titles(owner))

	// The same set projected for visitors drops the first two.
	visible := VisibleOrder(links, time.Now())
	assert.Equal(t, []string{"live"}, titles(visible))
}

func TestOwnerOrderIgnoresPinning(t *testing.T) {
	links := []models.LinkModel{
		mkLink("b", 1, true, true, nil, nil),
		mkLink("a", 0, true, false, nil, nil),
	}

	got := OwnerOrder(links)
	assert.Equal(t, []string{"a", "b"}, titles(got))
}
