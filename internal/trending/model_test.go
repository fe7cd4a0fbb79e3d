package trending

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidChains(t *testing.T) {
	assert.Nil(t, InvalidChains([]string{"1", "56", "501"}))
	assert.Nil(t, InvalidChains(nil))
	assert.Equal(t, []string{"999"}, InvalidChains([]string{"1", "999"}))
	assert.Equal(t, []string{"solana", "2"}, InvalidChains([]string{"solana", "501", "2"}))
}

func TestCacheKeyIsOrderInsensitive(t *testing.T) {
	assert.Equal(t, cacheKey([]string{"56", "1", "501"}), cacheKey([]string{"501", "1", "56"}))
	assert.Equal(t, "trend:1,501,56", cacheKey([]string{"56", "1", "501"}))
}
