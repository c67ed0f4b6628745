// Package ebiten provides an Ebiten-based window renderer for the network map.
package ebiten

import (
	"image/color"
	"math"
	"time"
)

// getPulsingColor returns base pulsing between 50% and 100% brightness.
// The HUD uses it for the target line while the address is still decoding.
func getPulsingColor(base color.RGBA, now time.Time) color.RGBA {
	// Pulse period: 400ms, fast enough to read as "busy"
	const pulsePeriod = 400.0
	pulsePhase := float64(now.UnixMilli()%int64(pulsePeriod)) / pulsePeriod
	pulseValue := (math.Sin(pulsePhase*2*math.Pi) + 1.0) / 2.0 // 0.0 to 1.0

	brightness := 0.5 + 0.5*pulseValue
	return color.RGBA{
		R: uint8(float64(base.R) * brightness),
		G: uint8(float64(base.G) * brightness),
		B: uint8(float64(base.B) * brightness),
		A: base.A,
	}
}
