// Package ebiten provides an Ebiten-based window renderer for the network map.
package ebiten

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "quickhacks/pkg/engine/input"
)

// Update handles input and applies pending game data (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	now := time.Now()
	e.frameTime = now

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !e.IsConsoleActive() {
		x, y := ebiten.CursorPosition()
		e.game.Click(float64(x), float64(y), now)
	}

	// Ebiten uses KeyGraveAccent for backtick (`)
	if inpututil.IsKeyJustPressed(ebiten.KeyGraveAccent) {
		e.ToggleConsole()
	}

	intents := e.takeConsoleIntents()
	if e.IsConsoleActive() {
		e.HandleConsoleInput()
	} else {
		intents = append(intents, e.checkInput()...)
	}

	for _, intent := range intents {
		if intent.Action == engineinput.ActionDebug {
			e.debug = !e.debug
			continue
		}
		if !e.game.HandleIntent(intent, now) {
			return ebiten.Termination
		}
	}

	e.game.Update(now)
	return nil
}

// checkInput translates keys pressed this tick into intents
func (e *EbitenRenderer) checkInput() []engineinput.Intent {
	var intents []engineinput.Intent
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		code, ok := keyCodes[key]
		if !ok {
			continue
		}
		intent := engineinput.Translate(engineinput.RawInput{
			Device:    engineinput.DeviceKeyboard,
			Code:      code,
			Timestamp: e.frameTime,
		})
		if intent.Action != engineinput.ActionNone {
			intents = append(intents, intent)
		}
	}
	return intents
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
		e.game.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
