package link

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTitle(t *testing.T) {
	got, err := validateTitle("  My Site  ")
	require.NoError(t, err)
	assert.Equal(t, "My Site", got)

	_, err = validateTitle("   ")
	assert.Error(t, err)

	// 100 runes are fine, 101 are not; multi-byte characters count as one.
	ok := strings.Repeat("趣", 100)
	got, err = validateTitle(ok)
	require.NoError(t, err)
	assert.Equal(t, ok, got)

	_, err = validateTitle(strings.Repeat("趣", 101))
	assert.Error(t, err)
}

func TestValidateURL(t *testing.T) {
	got, err := validateURL(" https://example.com/path ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", got)

	for _, bad := range []string{"", "not a url", "example.com", "https://"} {
		_, err := validateURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseScheduleDate(t *testing.T) {
	got, err := parseScheduleDate("2026-06-15T12:30:00Z")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 12, got.UTC().Hour())

	// datetime-local payload without seconds or zone
	got, err = parseScheduleDate("2026-06-15T12:30")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = parseScheduleDate("2026-06-15")
	require.NoError(t, err)
	require.NotNil(t, got)

	// empty clears the bound
	got, err = parseScheduleDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseScheduleDate("15/06/2026")
	assert.Error(t, err)
}

func TestValidateWindow(t *testing.T) {
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(24 * time.Hour)

	assert.NoError(t, validateWindow(nil, nil))
	assert.NoError(t, validateWindow(&early, nil))
	assert.NoError(t, validateWindow(nil, &late))
	assert.NoError(t, validateWindow(&early, &late))
	assert.NoError(t, validateWindow(&early, &early))

	err := validateWindow(&late, &early)
	require.Error(t, err)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestCheckPermutation(t *testing.T) {
	current := []string{"a", "b", "c"}

	assert.NoError(t, checkPermutation([]string{"c", "a", "b"}, current))
	assert.NoError(t, checkPermutation([]string{"a", "b", "c"}, current))

	cases := map[string][]string{
		"missing id":   {"a", "b"},
		"extra id":     {"a", "b", "c", "d"},
		"duplicate id": {"a", "a", "c"},
		"foreign id":   {"a", "b", "x"},
	}
	for name, ids := range cases {
		err := checkPermutation(ids, current)
		require.Error(t, err, name)
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), name)
	}
}
