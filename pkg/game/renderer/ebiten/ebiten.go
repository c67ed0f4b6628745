// Package ebiten provides an Ebiten-based window renderer for the network map.
package ebiten

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"quickhacks/pkg/game/renderer"
)

// New creates a new Ebiten renderer for a width x height window
func New(width, height int) *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:  width,
		windowHeight: height,
		title:        "QuickHacks",
	}
}

// Init loads fonts
func (e *EbitenRenderer) Init() error {
	if err := e.loadFonts(); err != nil {
		return fmt.Errorf("loading fonts: %w", err)
	}
	return nil
}

// Run opens the window and drives g until the user quits
func (e *EbitenRenderer) Run(g renderer.Game) error {
	e.game = g
	e.frameTime = time.Now()
	g.Resize(float64(e.windowWidth), float64(e.windowHeight))

	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		log.Printf("Main window closed")
		return nil
	}
	return err
}

// ShowMessage displays a transient status line in the HUD
func (e *EbitenRenderer) ShowMessage(msg string) {
	e.messagesMutex.Lock()
	defer e.messagesMutex.Unlock()
	e.message = msg
	e.messageAt = time.Now()
}

func (e *EbitenRenderer) currentMessage(now time.Time) string {
	e.messagesMutex.RLock()
	defer e.messagesMutex.RUnlock()
	if e.message == "" || now.Sub(e.messageAt) > messageLifetime {
		return ""
	}
	return e.message
}

// GetViewportSize returns the current window dimensions
func (e *EbitenRenderer) GetViewportSize() (width, height int) {
	return e.windowWidth, e.windowHeight
}
