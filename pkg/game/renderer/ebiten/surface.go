// Package ebiten provides an Ebiten-based window renderer for the network map.
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// surface adapts an ebiten image to renderer.Surface.
type surface struct {
	img *ebiten.Image
}

func (s surface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s surface) Clear(c color.RGBA) {
	s.img.Fill(c)
}

func (s surface) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

func (s surface) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s surface) StrokeRect(x, y, w, h, width float64, c color.RGBA) {
	vector.StrokeRect(s.img, float32(x), float32(y), float32(w), float32(h), float32(width), c, false)
}
