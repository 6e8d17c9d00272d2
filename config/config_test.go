package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupIsIdempotentAndLoadsDefaults(t *testing.T) {
	Setup()
	Setup() // second call must be a no-op
	assert.True(t, Settings.Search.UseTT)
	assert.Equal(t, 64, Settings.Search.TTSizeMB)
	assert.Equal(t, int64(2048), Settings.Search.CheckEveryNodes)
}

func TestLogLevelsTableCoversNotice(t *testing.T) {
	lvl, ok := LogLevels["notice"]
	assert.True(t, ok)
	assert.Equal(t, 3, lvl)
}
