// Package ebiten provides console implementation for the Ebiten renderer.
package ebiten

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	engineinput "quickhacks/pkg/engine/input"
	"quickhacks/pkg/game/renderer"
)

const (
	consoleOutputLimit  = 50
	consoleAnimDuration = 200 * time.Millisecond
)

// hudColors names the colors the "color" command can change.
var hudColors = map[string]*color.RGBA{
	"text":   &colorText,
	"subtle": &colorSubtle,
	"self":   &colorTargetSelf,
	"other":  &colorTargetOther,
	"panel":  &colorPanelBackground,
}

// parseColorRGBA parses "R,G,B,A" into color.RGBA. Values 0-255.
func parseColorRGBA(s string) (color.RGBA, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return color.RGBA{}, false
	}
	var vals [4]uint8
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, false
		}
		vals[i] = uint8(n)
	}
	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, true
}

// ToggleConsole toggles the console open/closed state
func (e *EbitenRenderer) ToggleConsole() {
	e.consoleMutex.Lock()
	defer e.consoleMutex.Unlock()

	if e.consoleAnimating {
		// Don't toggle while animating
		return
	}

	e.consoleActive = !e.consoleActive
	e.consoleAnimating = true
	e.consoleAnimStart = time.Now()

	if !e.consoleActive {
		e.consoleText = ""
	}
}

// IsConsoleActive returns whether the console is currently active
func (e *EbitenRenderer) IsConsoleActive() bool {
	e.consoleMutex.RLock()
	defer e.consoleMutex.RUnlock()
	return e.consoleActive || e.consoleAnimating
}

// HandleConsoleInput processes input when console is active
func (e *EbitenRenderer) HandleConsoleInput() {
	e.consoleMutex.Lock()
	defer e.consoleMutex.Unlock()

	if !e.consoleActive {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if len(e.consoleText) > 0 {
			e.consoleText = e.consoleText[:len(e.consoleText)-1]
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
		cmdText := e.consoleText
		e.consoleText = ""
		e.executeCommandUnlocked(cmdText)
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r == '`' {
			continue
		}
		e.consoleText += string(r)
	}
}

// executeCommandUnlocked parses and executes a console command without locking
// Caller must hold consoleMutex
func (e *EbitenRenderer) executeCommandUnlocked(cmd string) {
	parts := strings.Fields(strings.TrimSpace(cmd))
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])

	switch command {
	case "bind":
		if len(parts) < 3 {
			e.addConsoleOutputUnlocked("Usage: bind <key> <action>")
			return
		}
		key := strings.ToLower(parts[1])
		actionName := strings.Join(parts[2:], " ")
		action, ok := engineinput.ParseAction(actionName)
		if !ok {
			e.addConsoleOutputUnlocked(fmt.Sprintf("Unknown action: %s", actionName))
			return
		}
		engineinput.SetSingleBinding(action, key)
		e.addConsoleOutputUnlocked(fmt.Sprintf("Bound '%s' to %s", key, engineinput.ActionName(action)))

	case "bindings":
		byAction := engineinput.GetBindingsByAction()
		actions := make([]engineinput.Action, 0, len(byAction))
		for a := range byAction {
			actions = append(actions, a)
		}
		sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
		for _, a := range actions {
			e.addConsoleOutputUnlocked(fmt.Sprintf("  %-14s %s", engineinput.ActionName(a), strings.Join(byAction[a], ", ")))
		}

	case "do":
		if len(parts) < 2 {
			e.addConsoleOutputUnlocked("Usage: do <action>")
			return
		}
		actionName := strings.Join(parts[1:], " ")
		action, ok := engineinput.ParseAction(actionName)
		if !ok {
			e.addConsoleOutputUnlocked(fmt.Sprintf("Unknown action: %s", actionName))
			return
		}
		e.pendingIntents = append(e.pendingIntents, engineinput.Intent{Action: action})

	case "color":
		if len(parts) != 3 {
			e.addConsoleOutputUnlocked("Usage: color <text|subtle|self|other|panel> <R,G,B,A>")
			return
		}
		name := strings.ToLower(parts[1])
		dst, ok := hudColors[name]
		if !ok {
			e.addConsoleOutputUnlocked(fmt.Sprintf("Unknown color: %s", name))
			return
		}
		c, ok := parseColorRGBA(parts[2])
		if !ok {
			e.addConsoleOutputUnlocked(fmt.Sprintf("Bad color %q, want R,G,B,A", parts[2]))
			return
		}
		*dst = c

	case "version":
		e.addConsoleOutputUnlocked(fmt.Sprintf("QuickHacks %s (%s)", renderer.Version, renderer.Commit))

	case "help":
		e.addConsoleOutputUnlocked("Commands:")
		e.addConsoleOutputUnlocked("  bind <key> <action>  - Bind a key to an action")
		e.addConsoleOutputUnlocked("  bindings            - List key bindings")
		e.addConsoleOutputUnlocked("  do <action>         - Run an action (e.g. do refresh)")
		e.addConsoleOutputUnlocked("  color <name> <rgba> - Change a HUD color")
		e.addConsoleOutputUnlocked("  version             - Show the build")

	default:
		e.addConsoleOutputUnlocked(fmt.Sprintf("Unknown command: %s (type 'help' for commands)", command))
	}
}

// addConsoleOutputUnlocked adds a line to the console output without locking
// Caller must hold consoleMutex
func (e *EbitenRenderer) addConsoleOutputUnlocked(line string) {
	e.consoleOutput = append(e.consoleOutput, line)
	if len(e.consoleOutput) > consoleOutputLimit {
		e.consoleOutput = e.consoleOutput[len(e.consoleOutput)-consoleOutputLimit:]
	}
}

// takeConsoleIntents returns intents queued by the "do" command
func (e *EbitenRenderer) takeConsoleIntents() []engineinput.Intent {
	e.consoleMutex.Lock()
	defer e.consoleMutex.Unlock()
	intents := e.pendingIntents
	e.pendingIntents = nil
	return intents
}

// consoleProgress advances the open/close animation and returns 0 (closed)
// to 1 (open)
func (e *EbitenRenderer) consoleProgress(now time.Time) float64 {
	e.consoleMutex.Lock()
	defer e.consoleMutex.Unlock()

	if !e.consoleAnimating {
		if e.consoleActive {
			return 1
		}
		return 0
	}
	elapsed := now.Sub(e.consoleAnimStart)
	if elapsed >= consoleAnimDuration {
		e.consoleAnimating = false
		if e.consoleActive {
			return 1
		}
		return 0
	}
	eased := easeInOut(float64(elapsed) / float64(consoleAnimDuration))
	if e.consoleActive {
		return eased
	}
	return 1 - eased
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// drawConsole draws the console overlay with animation
func (e *EbitenRenderer) drawConsole(screen *ebiten.Image, now time.Time) {
	progress := e.consoleProgress(now)
	if progress <= 0 {
		return
	}

	e.consoleMutex.RLock()
	consoleText := e.consoleText
	output := make([]string, len(e.consoleOutput))
	copy(output, e.consoleOutput)
	e.consoleMutex.RUnlock()

	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()

	// Console takes up the bottom 40% of the screen
	consoleHeight := int(float64(screenHeight) * 0.4 * progress)
	consoleY := screenHeight - consoleHeight

	bgColor := color.RGBA{0, 0, 0, uint8(220 * progress)}
	vector.DrawFilledRect(screen, 0, float32(consoleY), float32(screenWidth), float32(consoleHeight), bgColor, false)
	borderColor := color.RGBA{0x87, 0x5f, 0xff, uint8(255 * progress)}
	vector.DrawFilledRect(screen, 0, float32(consoleY), float32(screenWidth), 2, borderColor, false)

	if consoleHeight <= 20 || e.monoFontSource == nil {
		return
	}
	face := e.getMonoFontFace()
	lineHeight := int(hudFontSize) + 6
	padding := 10

	outputY := consoleY + padding
	linesToShow := (consoleHeight - padding*2 - lineHeight*2) / lineHeight
	if linesToShow > 0 && len(output) > 0 {
		for i := max(0, len(output)-linesToShow); i < len(output); i++ {
			e.drawColoredTextWithFace(screen, output[i], padding, outputY, color.RGBA{200, 200, 200, uint8(255 * progress)}, face)
			outputY += lineHeight
		}
	}

	cursor := "_"
	if now.UnixMilli()/500%2 == 0 {
		cursor = " "
	}
	inputText := "> " + consoleText + cursor
	_, inputHeight := text.Measure(inputText, face, 0)
	inputY := consoleY + consoleHeight - padding - int(inputHeight*2)
	e.drawColoredTextWithFace(screen, inputText, padding, inputY, color.RGBA{255, 255, 255, uint8(255 * progress)}, face)
}
