package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"   ":            "",
		"abc123":         "abc123",
		"  abc123  ":     "abc123",
		"Bearer abc123":  "abc123",
		"bearer abc123":  "abc123",
		"Bearer  abc123": "abc123",
		"Bearerabc123":   "Bearerabc123",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeToken(in), "input %q", in)
	}
}
