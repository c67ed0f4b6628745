// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"quickhacks/pkg/game/renderer"
	"quickhacks/pkg/game/state"
	"quickhacks/pkg/game/world"
)

// ImageSurface rasterizes frames into an RGBA image.
type ImageSurface struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewImageSurface creates a width x height surface.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

// Image returns the backing image.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

func (s *ImageSurface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *ImageSurface) Clear(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Line fills the quad around the segment, width pixels across.
func (s *ImageSurface) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
	s.z.MoveTo(float32(x0+nx), float32(y0+ny))
	s.z.LineTo(float32(x1+nx), float32(y1+ny))
	s.z.LineTo(float32(x1-nx), float32(y1-ny))
	s.z.LineTo(float32(x0-nx), float32(y0-ny))
	s.z.ClosePath()
	s.z.Draw(s.img, b, image.NewUniform(c), image.Point{})
}

func (s *ImageSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	r := image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h)))
	draw.Draw(s.img, r.Intersect(s.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

func (s *ImageSurface) StrokeRect(x, y, w, h, width float64, c color.RGBA) {
	s.Line(x, y, x+w, y, width, c)
	s.Line(x+w, y, x+w, y+h, width, c)
	s.Line(x+w, y+h, x, y+h, width, c)
	s.Line(x, y+h, x, y, width, c)
}

// Caption writes a line of text at the bottom left corner.
func (s *ImageSurface) Caption(text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, s.img.Bounds().Dy()-8),
	}
	d.DrawString(text)
}

// WriteScreenshot renders one frame of m at now and encodes it as PNG.
func WriteScreenshot(w io.Writer, m *state.Map, now time.Time) error {
	s := NewImageSurface(int(m.Width), int(m.Height))
	renderer.DrawFrame(m, s, now)
	s.Caption(fmt.Sprintf("%s  players: %d  pulses: %d", now.Format("2006-01-02 15:04:05"), len(m.Nodes), m.Tracker.Len()), world.ColorPurple)
	return png.Encode(w, s.Image())
}

// SaveScreenshotPNG writes the current map to screenshot-<timestamp>.png
// in the working directory and returns its path.
func SaveScreenshotPNG(m *state.Map, now time.Time) (string, error) {
	filename := fmt.Sprintf("screenshot-%s.png", now.Format("20060102-150405"))
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteScreenshot(f, m, now); err != nil {
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	return absPath, nil
}
