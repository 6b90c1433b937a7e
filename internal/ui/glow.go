package ui

import (
	"image/color"
	"math"
	"time"
)

const (
	// GlowPeriod is the length of one highlight pulse (2π / 0.004 ms).
	GlowPeriod = 1570796 * time.Microsecond

	// GlowMin and GlowMax bound the red channel of the highlight.
	GlowMin = 150
	GlowMax = 254
)

// GlowPhase maps elapsed time to a pulse position in [0, 1]. It only
// depends on elapsed modulo GlowPeriod, so it stays exact for any timestamp.
func GlowPhase(elapsed time.Duration) float64 {
	t := elapsed % GlowPeriod
	if t < 0 {
		t += GlowPeriod
	}

	angle := 2 * math.Pi * float64(t) / float64(GlowPeriod)
	return (math.Sin(angle) + 1) / 2
}

// GlowColor returns the pulsing border colour for hovered buttons.
func GlowColor(elapsed time.Duration) color.RGBA {
	glow := GlowMin + int(GlowPhase(elapsed)*(GlowMax-GlowMin))

	return color.RGBA{
		R: uint8(glow),
		G: uint8(glow - 40),
		A: 0xff,
	}
}
