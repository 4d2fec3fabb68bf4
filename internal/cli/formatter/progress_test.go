package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		width  int
		filled int
		label  string
	}{
		{"empty", 0, 10, 0, "  0%"},
		{"half", 0.5, 10, 5, " 50%"},
		{"full", 1, 10, 10, "100%"},
		{"over clamps", 1.5, 10, 10, "100%"},
		{"negative clamps", -0.5, 10, 0, "  0%"},
		{"tiny width clamps to 2", 0.5, 1, 1, " 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderProgress(tt.pct, tt.width))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.True(t, strings.HasSuffix(got, tt.label), got)
			assert.True(t, strings.HasPrefix(got, "["))
		})
	}
}

func TestRenderCounter(t *testing.T) {
	got := stripANSI(RenderCounter(3, 12, 8))
	assert.Equal(t, 2, strings.Count(got, filledBlock))
	assert.True(t, strings.HasSuffix(got, " 3/12"))

	zero := stripANSI(RenderCounter(0, 0, 4))
	assert.Equal(t, strings.Repeat(emptyBlock, 4)+" 0/0", zero)
}
