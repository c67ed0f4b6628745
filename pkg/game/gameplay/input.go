package gameplay

import (
	"fmt"
	"time"

	"github.com/leonelquinteros/gotext"

	"quickhacks/pkg/engine/audio"
	engineinput "quickhacks/pkg/engine/input"
	"quickhacks/pkg/game/config"
	"quickhacks/pkg/game/devtools"
	"quickhacks/pkg/game/glyph"
)

// volumeStep is the change per volume key press.
const volumeStep = 0.1

// HandleIntent applies a high-level input intent. It returns false when the
// user asked to quit.
func (c *Controller) HandleIntent(intent engineinput.Intent, now time.Time) bool {
	switch intent.Action {
	case engineinput.ActionNone, engineinput.ActionDebug:
		return true

	case engineinput.ActionQuit:
		return false

	case engineinput.ActionRefresh:
		c.setMessage(gotext.Get("REFRESHING"), now)
		c.refreshAsync()

	case engineinput.ActionClearTarget:
		c.clearTarget()

	case engineinput.ActionCycleTarget:
		c.cycleTarget(now)

	case engineinput.ActionCopyTarget:
		addr := c.Target.Address()
		if addr != "" && c.clipboard != nil && c.clipboard.Copy(addr) {
			c.setMessage(gotext.Get("COPIED", addr), now)
		}

	case engineinput.ActionMute:
		if c.cues == nil {
			break
		}
		muted := c.cues.Enabled()
		c.cues.SetEnabled(!muted)
		config.SetMuted(muted)

	case engineinput.ActionVolumeUp, engineinput.ActionVolumeDown:
		c.changeVolume(intent.Action == engineinput.ActionVolumeUp)

	case engineinput.ActionMusicToggle:
		if c.music != nil {
			c.music.TogglePlay()
		}

	case engineinput.ActionMusicNext:
		if c.music != nil {
			c.music.Next()
		}

	case engineinput.ActionMusicPrevious:
		if c.music != nil {
			c.music.Previous()
		}

	case engineinput.ActionMusicShuffle:
		if c.music != nil {
			on := c.music.ToggleShuffle()
			config.SetShuffle(on)
			c.setMessage(gotext.Get("SHUFFLE", onOff(on)), now)
		}

	case engineinput.ActionDisconnect:
		c.Disconnect(now)

	case engineinput.ActionNewGlyph:
		c.setGlyph(glyph.NewSeed(c.rng))
		c.playCue(audio.CueClick)

	case engineinput.ActionRotateGlyph:
		c.setGlyph(c.Glyph.Seed.Rotate())
		c.playCue(audio.CueClick)

	case engineinput.ActionScreenshot:
		path, err := devtools.SaveScreenshotPNG(c.Map, now)
		if err != nil {
			c.setMessage(fmt.Sprintf("Screenshot failed: %v", err), now)
		} else {
			c.setMessage(gotext.Get("SAVED", path), now)
		}

	case engineinput.ActionMapDump:
		path, err := devtools.SaveMapDump(c.Map, now)
		if err != nil {
			c.setMessage(fmt.Sprintf("Map dump failed: %v", err), now)
		} else {
			c.setMessage(gotext.Get("SAVED", path), now)
		}
	}
	return true
}

func (c *Controller) changeVolume(up bool) {
	if c.cues == nil {
		return
	}
	step := -volumeStep
	if up {
		step = volumeStep
	}
	v := c.cues.Volume() + step
	c.cues.SetVolume(v)
	if c.music != nil {
		c.music.SetVolume(v)
	}
	config.SetVolume(c.cues.Volume())
	config.SetMusicVolume(c.cues.Volume())
}

func (c *Controller) setGlyph(seed glyph.Seed) {
	c.Glyph = glyph.Generate(seed)
	config.SetGlyphSeed(seed.String())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
