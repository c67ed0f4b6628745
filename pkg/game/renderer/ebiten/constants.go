// Package ebiten provides an Ebiten-based window renderer for the network map.
package ebiten

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// HUD colors
var (
	colorText            = color.RGBA{0xce, 0xcc, 0xde, 255} // Map line white
	colorSubtle          = color.RGBA{120, 118, 140, 255}
	colorTargetSelf      = color.RGBA{0x87, 0x5f, 0xff, 255} // Purple
	colorTargetOther     = color.RGBA{0xd4, 0x2d, 0x17, 255} // Red
	colorPanelBackground = color.RGBA{20, 19, 28, 200}       // Semi-transparent background
)

// HUD layout
const (
	hudFontSize     = 13.0
	hudPadding      = 10
	hudLineSpacing  = 4
	glyphAvatarSize = 64
	messageLifetime = 3 * time.Second
)

// keyCodes maps window keys to binding codes.
var keyCodes = map[ebiten.Key]string{
	ebiten.KeyR:          "r",
	ebiten.KeyF5:         "f5",
	ebiten.KeyEscape:     "escape",
	ebiten.KeyC:          "c",
	ebiten.KeyD:          "d",
	ebiten.KeyTab:        "tab",
	ebiten.KeyM:          "m",
	ebiten.KeyEqual:      "=",
	ebiten.KeyKPAdd:      "+",
	ebiten.KeyMinus:      "-",
	ebiten.KeyKPSubtract: "-",
	ebiten.KeySpace:      "space",
	ebiten.KeyP:          "p",
	ebiten.KeyN:          "n",
	ebiten.KeyArrowRight: "arrow_right",
	ebiten.KeyB:          "b",
	ebiten.KeyArrowLeft:  "arrow_left",
	ebiten.KeyS:          "s",
	ebiten.KeyG:          "g",
	ebiten.KeyT:          "t",
	ebiten.KeyQ:          "q",
	ebiten.KeyF12:        "f12",
	ebiten.KeyF9:         "f9",
	ebiten.KeyF3:         "f3",
}
