package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tessro/tapedeck/internal/core"
)

func TestForFallsBackToClassic(t *testing.T) {
	assert.Equal(t, core.ThemeClassic, For("neon").Name)
	assert.Equal(t, For(core.ThemeClassic).Primary, For("").Primary)
	assert.NotEqual(t, For(core.ThemeClassic).Text, For(core.ThemeBlack).Text)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Kushi", 10, "Kushi"},
		{"Kushi Kushiga", 6, "Kushi…"},
		{"ఖుషి ఖుషీగా", 0, ""},
		{"日本語の歌", 5, "日本…"},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.width)
		assert.Equal(t, tt.want, got, tt.in)
		assert.LessOrEqual(t, Width(got), tt.width)
	}
}

func TestMixColor(t *testing.T) {
	assert.Equal(t, Orange, MixColor(core.ColorOrange))
	assert.Equal(t, White, MixColor("unknown"))
}
