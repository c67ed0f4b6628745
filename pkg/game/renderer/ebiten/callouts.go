// Package ebiten provides an Ebiten-based window renderer for the network map.
package ebiten

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"quickhacks/pkg/game/renderer"
)

// Callout animation timing
const (
	calloutEntrance = 200 * time.Millisecond
	calloutExit     = 200 * time.Millisecond
	calloutPadding  = 6
	calloutGap      = 6
)

// appendRoundedRect adds a rounded rectangle to the path. (x, y) is top-left; w, h are size; r is corner radius.
func appendRoundedRect(p *vector.Path, x, y, w, h, r float32) {
	appendRoundedRectDir(p, x, y, w, h, r, vector.Clockwise)
}

// appendRoundedRectDir adds a rounded rectangle with the given winding direction.
// CounterClockwise creates a hole when combined with an outer clockwise rect.
func appendRoundedRectDir(p *vector.Path, x, y, w, h, r float32, dir vector.Direction) {
	if r <= 0 {
		p.MoveTo(x, y)
		p.LineTo(x, y+h)
		p.LineTo(x+w, y+h)
		p.LineTo(x+w, y)
		p.Close()
		return
	}
	r = min(r, w/2, h/2)
	halfPi := float32(math.Pi / 2)
	pi := float32(math.Pi)
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, 3*halfPi, 0, dir)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, halfPi, dir)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, halfPi, pi, dir)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, pi, 3*halfPi, dir)
	p.Close()
}

// drawRoundedRectWithShadow draws a rounded rectangle with a soft shadow ring
// derived from the border color. alpha scales the shadow for fades.
func drawRoundedRectWithShadow(screen *ebiten.Image, x, y, w, h, cornerRadius, borderWidth float32, bgColor, borderColor color.Color, alpha float32) {
	const shadowSpread = 6
	bor, bog, bob, _ := borderColor.RGBA()
	shadow := color.RGBA{
		R: max(uint8((bor>>8)*15/255), 8),
		G: max(uint8((bog>>8)*15/255), 8),
		B: max(uint8((bob>>8)*15/255), 8),
	}

	var path vector.Path
	for i := shadowSpread; i >= 1; i-- {
		ring := float32(min(12+i*8, 55)) * alpha
		path.Reset()
		appendRoundedRect(&path,
			x-float32(i), y-float32(i),
			w+float32(i*2), h+float32(i*2),
			cornerRadius+float32(i))
		appendRoundedRectDir(&path,
			x-float32(i-1), y-float32(i-1),
			w+float32((i-1)*2), h+float32((i-1)*2),
			cornerRadius+float32(i-1), vector.CounterClockwise)
		drawOpts := &vector.DrawPathOptions{AntiAlias: true}
		c := shadow
		c.A = uint8(ring)
		drawOpts.ColorScale.ScaleWithColor(c)
		vector.FillPath(screen, &path, nil, drawOpts)
	}

	path.Reset()
	appendRoundedRect(&path, x, y, w, h, cornerRadius)
	drawOpts := &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(bgColor)
	vector.FillPath(screen, &path, nil, drawOpts)

	strokeOpts := &vector.StrokeOptions{Width: borderWidth, MiterLimit: 10}
	drawOpts = &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(borderColor)
	vector.StrokePath(screen, &path, strokeOpts, drawOpts)
}

// applyAlpha scales c's alpha, fading toward transparent black.
func applyAlpha(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// calloutMotion returns opacity and vertical offset for a callout at now.
// Labels slide down into place on entry and keep sliding down as they fade.
func calloutMotion(c renderer.Callout, now time.Time) (alpha float64, offsetY float32) {
	alpha = 1
	if age := now.Sub(c.CreatedAt); age < calloutEntrance {
		p := float64(age) / float64(calloutEntrance)
		alpha = p
		offsetY = float32(-20 * (1 - p))
	}
	if left := c.ExpiresAt.Sub(now); left <= 0 {
		return 0, 0
	} else if left < calloutExit {
		p := float64(left) / float64(calloutExit)
		alpha = p
		offsetY = float32(20 * (1 - p))
	}
	return alpha, offsetY
}

// drawCallouts renders event labels above their nodes, kept inside the window.
func (e *EbitenRenderer) drawCallouts(screen *ebiten.Image, callouts []renderer.Callout, now time.Time) {
	if len(callouts) == 0 || e.sansFontSource == nil {
		return
	}
	face := e.getSansFontFace()
	boxH := float32(hudFontSize) + calloutPadding*2

	for _, c := range callouts {
		alpha, offsetY := calloutMotion(c, now)
		if alpha < 0.01 {
			continue
		}

		boxW := float32(e.getTextWidthWithFace(c.Text, face)) + calloutPadding*2
		x := float32(c.X) - boxW/2
		y := float32(c.Y-c.Radius) - calloutGap - boxH + offsetY
		x = max(0, min(x, float32(e.windowWidth)-boxW))
		y = max(0, min(y, float32(e.windowHeight)-boxH))

		bg := applyAlpha(colorPanelBackground, alpha)
		border := applyAlpha(c.Color, alpha)
		drawRoundedRectWithShadow(screen, x, y, boxW, boxH, 4, 1, bg, border, float32(alpha))
		e.drawColoredTextWithFace(screen, c.Text, int(x)+calloutPadding, int(y)+calloutPadding, border, face)
	}
}
