// Package ebiten provides an Ebiten-based window renderer for the network map.
package ebiten

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"quickhacks/pkg/game/renderer"
	"quickhacks/pkg/game/ui"
)

// Draw renders the map and HUD to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	now := e.frameTime
	e.game.Draw(surface{img: screen}, now)

	hud := e.game.HUD(now)
	if msg := e.currentMessage(now); msg != "" {
		hud.Message = msg
	}
	if e.sansFontSource != nil {
		e.drawHUD(screen, hud, now)
	}
	e.drawGlyphAvatar(screen, hud)
	e.drawCallouts(screen, hud.Callouts, now)

	e.drawConsole(screen, now)

	if e.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  pulses %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), hud.Pulses), hudPadding, e.windowHeight-20)
	}
}

// drawHUD draws the overlay panel in the top-left corner
func (e *EbitenRenderer) drawHUD(screen *ebiten.Image, hud renderer.HUD, now time.Time) {
	lines := renderer.HUDLines(hud)
	mono := e.getMonoFontFace()
	lineHeight := int(hudFontSize) + hudLineSpacing

	width := 0.0
	for _, l := range lines {
		if w := e.getTextWidthWithFace(l, mono); w > width {
			width = w
		}
	}
	vector.DrawFilledRect(screen, hudPadding/2, hudPadding/2,
		float32(width)+hudPadding*2, float32(len(lines)*lineHeight)+hudPadding,
		colorPanelBackground, false)

	for i, l := range lines {
		y := hudPadding + i*lineHeight
		if i == 0 {
			e.drawColoredTextWithFace(screen, l, hudPadding, y, e.targetColor(hud, now), mono)
			continue
		}
		e.drawColoredText(screen, l, hudPadding, y, colorText)
	}
}

// targetColor picks the color of the target line
func (e *EbitenRenderer) targetColor(hud renderer.HUD, now time.Time) color.Color {
	var base color.RGBA
	switch hud.TargetStyle {
	case ui.StyleSelf:
		base = colorTargetSelf
	case ui.StyleOther:
		base = colorTargetOther
	default:
		return colorSubtle
	}
	if hud.Decoding {
		return getPulsingColor(base, now)
	}
	return base
}

// drawGlyphAvatar draws the profile glyph in the top-right corner
func (e *EbitenRenderer) drawGlyphAvatar(screen *ebiten.Image, hud renderer.HUD) {
	if hud.Glyph == nil {
		return
	}
	if e.glyphImage == nil || e.glyphSeed != hud.Glyph.Seed {
		e.glyphImage = ebiten.NewImageFromImage(hud.Glyph.Thumbnail(glyphAvatarSize))
		e.glyphSeed = hud.Glyph.Seed
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(e.windowWidth-glyphAvatarSize-hudPadding), hudPadding)
	screen.DrawImage(e.glyphImage, op)
}
