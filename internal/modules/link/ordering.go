package link

import (
	"sort"
	"time"

	"github.com/linkdeck/core/internal/models"
)

// VisibleOrder projects the public rendering order of a link set: links that
// are active and inside their schedule window at asOf, pinned links first,
// each group ascending by Order. The sort is stable, so links sharing the
// same Order and pin state keep their relative input order.
func VisibleOrder(links []models.LinkModel, asOf time.Time) []models.LinkModel {
	out := make([]models.LinkModel, 0, len(links))
	for _, l := range links {
		if l.VisibleAt(asOf) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].Order < out[j].Order
	})
	return out
}

// OwnerOrder projects the dashboard order: every link regardless of state,
// ascending by Order only. Pinning does not reorder the owner's own view.
func OwnerOrder(links []models.LinkModel) []models.LinkModel {
	out := make([]models.LinkModel, len(links))
	copy(out, links)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
