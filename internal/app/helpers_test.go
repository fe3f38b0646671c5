package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "example.com", extractOriginHost("https://example.com"))
	assert.Equal(t, "example.com:3000", extractOriginHost("http://example.com:3000"))
	assert.Equal(t, "example.com", extractOriginHost("example.com"))
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("example.com", "example.com"))
	assert.False(t, matchOriginPattern("example.com", "other.com"))

	assert.True(t, matchOriginPattern("*.example.com", "app.example.com"))
	assert.False(t, matchOriginPattern("*.example.com", "example.org"))

	assert.True(t, matchOriginPattern("localhost:*", "localhost:5173"))
	assert.False(t, matchOriginPattern("localhost:*", "remotehost:5173"))
}
