package tui

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"

	"quickhacks/pkg/engine/input"
	"quickhacks/pkg/engine/terminal"
	"quickhacks/pkg/game/renderer"
	"quickhacks/pkg/game/ui"
)

// Frame pacing and layout
const (
	FrameInterval = 100 * time.Millisecond
	HUDRows       = 8
)

// ANSI control sequences
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	surface *Surface
	cols    int
	rows    int

	out *os.File

	message   string
	messageAt time.Time
	mu        sync.Mutex
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{out: os.Stdout}
}

// Init initializes the TUI renderer (colors, raster size)
func (t *TUIRenderer) Init() error {
	renderer.InitColors()
	t.resizeToTerminal()
	return nil
}

// resizeToTerminal reads the terminal size and reports whether it changed
func (t *TUIRenderer) resizeToTerminal() bool {
	cols, rows := terminal.MapGrid(HUDRows)
	if cols == t.cols && rows == t.rows && t.surface != nil {
		return false
	}
	t.cols, t.rows = cols, rows
	if t.surface == nil {
		t.surface = NewSurface(cols, rows)
	} else {
		t.surface.Resize(cols, rows)
	}
	return true
}

// Run drives g at a fixed frame rate until quit
func (t *TUIRenderer) Run(g renderer.Game) error {
	restore, err := input.RawMode()
	if err != nil {
		log.Printf("Cannot set terminal to raw mode, keys need Enter: %v", err)
	}
	defer restore()

	fmt.Fprint(t.out, hideCursor+clearScreen)
	defer fmt.Fprint(t.out, showCursor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	keys := make(chan input.RawInput, 16)
	go input.ReadKeys(ctx, os.Stdin, keys)

	w, h := t.surface.Size()
	g.Resize(w, h)

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case raw := <-keys:
			intent := input.Translate(raw)
			if intent.Action == input.ActionNone {
				continue
			}
			if !g.HandleIntent(intent, raw.Timestamp) {
				return nil
			}
		case now := <-ticker.C:
			if t.resizeToTerminal() {
				fmt.Fprint(t.out, clearScreen)
				w, h := t.surface.Size()
				g.Resize(w, h)
			}
			g.Update(now)
			g.Draw(t.surface, now)
			hud := g.HUD(now)
			t.drawCallouts(hud.Callouts)
			t.present(hud, now)
		}
	}
}

// drawCallouts writes event labels one row above their nodes
func (t *TUIRenderer) drawCallouts(callouts []renderer.Callout) {
	for _, c := range callouts {
		t.surface.Label(c.X, c.Y-c.Radius-CellHeight, c.Text, c.Color)
	}
}

// present writes the raster and HUD in one write to avoid tearing
func (t *TUIRenderer) present(hud renderer.HUD, now time.Time) {
	if msg := t.currentMessage(now); msg != "" {
		hud.Message = msg
	}
	var b strings.Builder
	b.WriteString(cursorHome)
	b.WriteString(strings.ReplaceAll(t.surface.Render(), "\n", "\r\n"))
	for _, line := range t.hudLines(hud) {
		b.WriteString("\x1b[2K")
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	fmt.Fprint(t.out, b.String())
}

// hudLines styles the HUD for the terminal
func (t *TUIRenderer) hudLines(hud renderer.HUD) []string {
	lines := renderer.HUDLines(hud)
	if len(lines) == 0 {
		return lines
	}
	switch hud.TargetStyle {
	case ui.StyleSelf:
		lines[0] = renderer.ColorSelf.Sprint(lines[0])
	case ui.StyleOther:
		lines[0] = renderer.ColorOther.Sprint(lines[0])
	default:
		lines[0] = renderer.ColorSubtle.Sprint(lines[0])
	}
	for i := 1; i < len(lines); i++ {
		lines[i] = renderer.ColorValue.Sprint(lines[i])
	}
	if len(lines) > HUDRows {
		lines = lines[:HUDRows]
	}
	return lines
}

// ShowMessage displays a message on the HUD status line
func (t *TUIRenderer) ShowMessage(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message = color.ClearCode(msg)
	t.messageAt = time.Now()
}

func (t *TUIRenderer) currentMessage(now time.Time) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.message == "" || now.Sub(t.messageAt) > 3*time.Second {
		return ""
	}
	return t.message
}

// GetViewportSize returns the raster size in canvas pixels
func (t *TUIRenderer) GetViewportSize() (width, height int) {
	if t.surface == nil {
		return terminal.DefaultWidth * int(CellWidth), (terminal.DefaultHeight - HUDRows) * int(CellHeight)
	}
	w, h := t.surface.Size()
	return int(w), int(h)
}
