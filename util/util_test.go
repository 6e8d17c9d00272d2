package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNpsComputesNodesPerSecond(t *testing.T) {
	// The divisor carries one extra nanosecond, so exact rates round down
	// by one.
	assert.Equal(t, int64(1_999_999), Nps(2_000_000, time.Second))
	assert.Equal(t, int64(999_999), Nps(500_000, 500*time.Millisecond))
}

func TestNpsNeverDividesByZero(t *testing.T) {
	assert.NotPanics(t, func() {
		Nps(100, 0)
	})
}
