package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccuracyPercent(t *testing.T) {
	assert.Equal(t, 0, AccuracyPercent(0, 0))
	assert.Equal(t, 33, AccuracyPercent(1, 3))
	assert.Equal(t, 67, AccuracyPercent(2, 3))
	assert.Equal(t, 100, AccuracyPercent(4, 4))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "0:07", FormatDuration(7*time.Second))
	assert.Equal(t, "2:05", FormatDuration(125*time.Second+400*time.Millisecond))
	assert.Equal(t, "0:00", FormatDuration(-time.Second))
}

func TestPointsBreakdownNet(t *testing.T) {
	b := PointsBreakdown{Gained: 30, Lost: 5, MiniGameBonus: 100, AICorrected: 10}
	assert.Equal(t, 135, b.Net())
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("fill-blank")
	assert.True(t, ok)
	assert.Equal(t, ModeFillBlank, m)

	_, ok = ParseMode("wordle")
	assert.False(t, ok)
}
