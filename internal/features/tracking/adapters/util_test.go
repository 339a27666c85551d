package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestJoinLocation verifies that empty parts never produce joiner artifacts.
func TestJoinLocation(t *testing.T) {
	assert.Equal(t, "Kyiv, UA", joinLocation("Kyiv", "", "UA"))
	assert.Equal(t, "Memphis, TN, US", joinLocation("Memphis", "TN", "US"))
	assert.Equal(t, "Kyiv", joinLocation("Kyiv"))
	assert.Equal(t, "", joinLocation("", "", ""))
	assert.Equal(t, "", joinLocation())
	assert.Equal(t, "UA", joinLocation("  ", "UA"))
}

// TestFirstNonEmpty verifies the fallback chain helper.
func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
	assert.Equal(t, "", firstNonEmpty())
}
