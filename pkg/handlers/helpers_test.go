package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloatOrDefault(t *testing.T) {
	v, ok := parseFloatOrDefault("45.5", 30)
	assert.True(t, ok)
	assert.Equal(t, 45.5, v)

	// 空ならデフォルト値
	v, ok = parseFloatOrDefault("", 30)
	assert.True(t, ok)
	assert.Equal(t, 30.0, v)

	// 空白のみも空として扱う
	v, ok = parseFloatOrDefault("  ", 30)
	assert.True(t, ok)
	assert.Equal(t, 30.0, v)

	_, ok = parseFloatOrDefault("abc", 30)
	assert.False(t, ok)
}

func TestParseIntOrDefault(t *testing.T) {
	v, ok := parseIntOrDefault("5", 3)
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	v, ok = parseIntOrDefault("", 3)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = parseIntOrDefault("3.5", 3)
	assert.False(t, ok)
}

func TestPercentToFraction(t *testing.T) {
	assert.Equal(t, 0.3, percentToFraction(30))
	assert.Equal(t, 0.0, percentToFraction(0))
	assert.Equal(t, 1.0, percentToFraction(100))
}
