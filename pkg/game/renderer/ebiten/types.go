// Package ebiten provides an Ebiten-based window renderer for the network map.
package ebiten

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	engineinput "quickhacks/pkg/engine/input"
	"quickhacks/pkg/game/glyph"
	"quickhacks/pkg/game/renderer"
)

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	// Window dimensions
	windowWidth  int
	windowHeight int
	title        string

	// Game driven by the window loop (set by Run)
	game renderer.Game

	// frameTime is sampled once per Update and shared with Draw
	frameTime time.Time

	// Font sources for text rendering
	sansFontSource *text.GoTextFaceSource // Sans-serif font for HUD labels
	monoFontSource *text.GoTextFaceSource // Monospace font for addresses

	// Cached font faces
	cachedSansFace *text.GoTextFace
	cachedMonoFace *text.GoTextFace

	// Glyph avatar, rebuilt when the seed changes
	glyphImage *ebiten.Image
	glyphSeed  glyph.Seed

	// Transient status line
	message       string
	messageAt     time.Time
	messagesMutex sync.RWMutex

	// Debug overlay (F3)
	debug bool

	// Console state
	consoleActive    bool
	consoleText      string   // Current input text
	consoleOutput    []string // Console output lines
	consoleAnimating bool
	consoleAnimStart time.Time
	pendingIntents   []engineinput.Intent // Queued by the "do" command
	consoleMutex     sync.RWMutex

	// Flag to track if we've logged window opening
	windowOpenedLogged bool
}
