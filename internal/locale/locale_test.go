package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("ru"))
	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("kk"))
	assert.False(t, IsSupported("fr"))
	assert.False(t, IsSupported("RU"))
	assert.False(t, IsSupported(""))
}

func TestResolveFallsBackToDefault(t *testing.T) {
	assert.Equal(t, RU, Resolve("fr"))
	assert.Equal(t, RU, Resolve(""))
	assert.Equal(t, RU, Resolve("en-US"))
	assert.Equal(t, EN, Resolve("en"))
	assert.Equal(t, KK, Resolve("kk"))
}

func TestDefaultIsFirstSupported(t *testing.T) {
	assert.Equal(t, Default, Supported[0])
}
