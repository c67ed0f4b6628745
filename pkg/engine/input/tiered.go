package input

import (
	"sort"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTerminal
)

// Action represents a high‑level intent on the map screen.
type Action int

const (
	ActionNone Action = iota

	// Map
	ActionRefresh
	ActionClearTarget
	ActionCopyTarget
	ActionCycleTarget
	ActionDisconnect

	// Audio
	ActionMute
	ActionVolumeUp
	ActionVolumeDown
	ActionMusicToggle
	ActionMusicNext
	ActionMusicPrevious
	ActionMusicShuffle

	// Profile glyph
	ActionNewGlyph
	ActionRotateGlyph

	// Meta / UI
	ActionQuit
	ActionScreenshot
	ActionMapDump
	ActionDebug
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "r", "arrow_up", "f12").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event. Codes are
// lowercased so terminal and window backends share one binding table.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   strings.ToLower(raw.Code),
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Map
	"r":      ActionRefresh,
	"f5":     ActionRefresh,
	"escape": ActionClearTarget,
	"c":      ActionCopyTarget,
	"tab":    ActionCycleTarget,
	"d":      ActionDisconnect,

	// Audio
	"m": ActionMute,
	"=": ActionVolumeUp,
	"+": ActionVolumeUp,
	"-": ActionVolumeDown,

	// Music
	"space":       ActionMusicToggle,
	"p":           ActionMusicToggle,
	"n":           ActionMusicNext,
	"arrow_right": ActionMusicNext,
	"b":           ActionMusicPrevious,
	"arrow_left":  ActionMusicPrevious,
	"s":           ActionMusicShuffle,

	// Profile glyph
	"g": ActionNewGlyph,
	"t": ActionRotateGlyph,

	// Meta / UI
	"q":          ActionQuit,
	"quit":       ActionQuit,
	"f12":        ActionScreenshot,
	"screenshot": ActionScreenshot,
	"f9":         ActionMapDump,
	"f3":         ActionDebug,
}

// reserved codes cannot be rebound away from their action.
var reserved = map[string]bool{
	"q":      true,
	"escape": true,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// Translate runs a raw event through every layer.
func Translate(raw RawInput) Intent {
	return MapToIntent(NewDebouncedInput(raw))
}

var actionNames = map[Action]string{
	ActionRefresh:       "Refresh",
	ActionClearTarget:   "Clear Target",
	ActionCopyTarget:    "Copy Target",
	ActionCycleTarget:   "Next Target",
	ActionDisconnect:    "Disconnect",
	ActionMute:          "Mute",
	ActionVolumeUp:      "Volume Up",
	ActionVolumeDown:    "Volume Down",
	ActionMusicToggle:   "Play/Pause",
	ActionMusicNext:     "Next Song",
	ActionMusicPrevious: "Previous Song",
	ActionMusicShuffle:  "Shuffle",
	ActionNewGlyph:      "New Glyph",
	ActionRotateGlyph:   "Rotate Glyph",
	ActionQuit:          "Quit",
	ActionScreenshot:    "Screenshot",
	ActionMapDump:       "Map Dump",
	ActionDebug:         "Debug Overlay",
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "None"
}

// ParseAction finds an action by its human-friendly name, ignoring case.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if strings.EqualFold(n, name) {
			return a, true
		}
	}
	return ActionNone, false
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so the help overlay doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single code.
func SetSingleBinding(action Action, code string) {
	code = strings.ToLower(code)
	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}
