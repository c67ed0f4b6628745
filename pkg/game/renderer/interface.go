package renderer

import (
	"image/color"
	"time"

	"quickhacks/pkg/engine/input"
	"quickhacks/pkg/game/glyph"
	"quickhacks/pkg/game/ui"
)

// Surface is the drawing target for a frame. Coordinates are canvas pixels.
type Surface interface {
	// Size returns the canvas dimensions
	Size() (width, height float64)

	// Clear fills the whole canvas
	Clear(c color.RGBA)

	// Line strokes a straight line
	Line(x0, y0, x1, y1, width float64, c color.RGBA)

	// FillRect fills an axis-aligned rectangle
	FillRect(x, y, w, h float64, c color.RGBA)

	// StrokeRect outlines an axis-aligned rectangle
	StrokeRect(x, y, w, h, width float64, c color.RGBA)
}

// HUD is the text overlay state a backend shows next to the map.
type HUD struct {
	Target      string
	TargetStyle ui.Style
	Decoding    bool
	Local       string
	Players     int
	Pulses      int
	NowPlaying  string
	Playing     bool
	Volume      float64
	Muted       bool
	Glyph       *glyph.Glyph
	Message     string
	Callouts    []Callout
}

// Callout is a short label floating above a node. X and Y are the node
// center in canvas pixels; Radius is the node half-size.
type Callout struct {
	X, Y      float64
	Radius    float64
	Text      string
	Color     color.RGBA
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Game is what a backend drives once per frame
type Game interface {
	// Update applies pending data at the frame boundary
	Update(now time.Time)

	// Draw renders the map onto s
	Draw(s Surface, now time.Time)

	// Resize reports a new canvas size
	Resize(width, height float64)

	// Click handles a pointer press at canvas coordinates
	Click(x, y float64, now time.Time)

	// HandleIntent applies a key intent; false means quit
	HandleIntent(in input.Intent, now time.Time) bool

	// HUD returns the overlay state at now
	HUD(now time.Time) HUD
}

// Renderer defines the interface for map rendering backends
// Implementations include TUI (terminal) and Ebiten (window).
type Renderer interface {
	// Init prepares the backend (window, fonts, terminal)
	Init() error

	// Run drives g until the user quits
	Run(g Game) error

	// ShowMessage displays a transient status line
	ShowMessage(msg string)

	// GetViewportSize returns the current canvas dimensions in pixels
	GetViewportSize() (width, height int)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() error {
	if Current != nil {
		return Current.Init()
	}
	return nil
}

// Run drives g with the current renderer
func Run(g Game) error {
	if Current != nil {
		return Current.Run(g)
	}
	return nil
}

// ShowMessage displays a message using the current renderer
func ShowMessage(msg string) {
	if Current != nil {
		Current.ShowMessage(msg)
	}
}

// GetViewportSize returns viewport dimensions
func GetViewportSize() (width, height int) {
	if Current != nil {
		return Current.GetViewportSize()
	}
	return 800, 600 // sensible defaults
}
