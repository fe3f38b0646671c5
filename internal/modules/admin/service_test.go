package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	at := time.Date(2026, 3, 14, 23, 59, 59, 0, loc)
	got := startOfDay(at)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), got)
	// stays in the input zone instead of collapsing to UTC
	assert.Equal(t, loc, got.Location())
	assert.True(t, got.Before(at))

	// a moment just after local midnight still maps to the same day
	early := time.Date(2026, 3, 14, 0, 0, 1, 0, loc)
	assert.Equal(t, got, startOfDay(early))
}
