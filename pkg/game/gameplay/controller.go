// Package gameplay wires the network map to its data feeds, audio and UI.
package gameplay

import (
	"context"
	"image/color"
	"log"
	"math/rand"
	"sync"
	"time"

	"quickhacks/pkg/engine/audio"
	"quickhacks/pkg/game/feed"
	"quickhacks/pkg/game/glyph"
	"quickhacks/pkg/game/renderer"
	"quickhacks/pkg/game/state"
	"quickhacks/pkg/game/ui"
	"quickhacks/pkg/game/world"
)

// messageLifetime is how long a status message stays in the HUD.
const messageLifetime = 4 * time.Second

// CuePlayer fires sound effects.
type CuePlayer interface {
	Play(c audio.Cue)
	SetEnabled(enabled bool)
	Enabled() bool
	SetVolume(v float64)
	Volume() float64
}

// Music controls background music.
type Music interface {
	TogglePlay()
	Next()
	Previous()
	ToggleShuffle() bool
	SetVolume(v float64)
	Status() audio.MusicStatus
}

// Copier writes text to a clipboard.
type Copier interface {
	Copy(text string) bool
}

// Options configures a Controller. Nil collaborators are skipped.
type Options struct {
	Source    feed.Source
	Cues      CuePlayer
	Music     Music
	Clipboard Copier
	Rand      *rand.Rand
	GlyphSeed *glyph.Seed
}

// timedCue fires a sound, and optionally a callout, once at is reached.
type timedCue struct {
	at      time.Time
	cue     audio.Cue
	address string
	label   string
	color   color.RGBA
}

// Controller owns the map and applies input, fetch results and feed events
// to it. Update, Draw, Click and HandleIntent run on the frame goroutine;
// Refresh and PostEvent may be called from any goroutine.
type Controller struct {
	Map    *state.Map
	Target *ui.TargetField
	Glyph  *glyph.Glyph

	source    feed.Source
	cues      CuePlayer
	music     Music
	clipboard Copier
	rng       *rand.Rand
	ctx       context.Context

	// Frame-goroutine state
	pendingCues []timedCue
	callouts    []callout
	message     string
	messageAt   time.Time

	// Mailbox filled by fetch and feed goroutines
	mu             sync.Mutex
	pendingPlayers []world.PlayerRecord
	hasPlayers     bool
	pendingEvents  []feed.Event
	pendingNotes   []string
}

// NewController creates a controller for a width x height canvas.
func NewController(width, height float64, opts Options) *Controller {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := state.NewMap(width, height)
	m.Rand = rng

	seed := glyph.NewSeed(rng)
	if opts.GlyphSeed != nil {
		seed = *opts.GlyphSeed
	}

	return &Controller{
		Map:       m,
		Target:    ui.NewTargetField(rng),
		Glyph:     glyph.Generate(seed),
		source:    opts.Source,
		cues:      opts.Cues,
		music:     opts.Music,
		clipboard: opts.Clipboard,
		rng:       rng,
		ctx:       context.Background(),
	}
}

func (c *Controller) playCue(cue audio.Cue) {
	if c.cues != nil {
		c.cues.Play(cue)
	}
}

// Notify queues a status message from any goroutine.
func (c *Controller) Notify(msg string) {
	log.Print(msg)
	c.mu.Lock()
	c.pendingNotes = append(c.pendingNotes, msg)
	c.mu.Unlock()
}

func (c *Controller) setMessage(msg string, now time.Time) {
	c.message = msg
	c.messageAt = now
}

// Update applies mailbox contents and due cues at the frame boundary.
func (c *Controller) Update(now time.Time) {
	c.mu.Lock()
	players, hasPlayers := c.pendingPlayers, c.hasPlayers
	events := c.pendingEvents
	notes := c.pendingNotes
	c.pendingPlayers, c.hasPlayers = nil, false
	c.pendingEvents = nil
	c.pendingNotes = nil
	c.mu.Unlock()

	if hasPlayers {
		c.Map.SetPlayers(players)
	}
	for _, ev := range events {
		c.HandleEvent(ev, now)
	}
	for _, n := range notes {
		c.setMessage(n, now)
	}

	kept := c.pendingCues[:0]
	for _, tc := range c.pendingCues {
		if now.Before(tc.at) {
			kept = append(kept, tc)
			continue
		}
		c.playCue(tc.cue)
		if tc.label != "" {
			c.addCallout(tc.address, tc.label, tc.color, tc.at)
		}
	}
	c.pendingCues = kept
	c.pruneCallouts(now)
}

// Draw renders the map.
func (c *Controller) Draw(s renderer.Surface, now time.Time) {
	renderer.DrawFrame(c.Map, s, now)
}

// Resize relays out the map for a new canvas.
func (c *Controller) Resize(width, height float64) {
	c.Map.Resize(width, height)
}

// Click targets the node under (x, y), if any.
func (c *Controller) Click(x, y float64, now time.Time) {
	n, ok := renderer.HitTest(c.Map.Nodes, x, y)
	if !ok {
		return
	}
	c.target(n.Address, now)
}

// target highlights address, starts the decode effect and copies it.
func (c *Controller) target(address string, now time.Time) {
	c.Map.Target.Set(address)
	c.Target.Show(address, now)
	if c.clipboard != nil {
		c.clipboard.Copy(address)
	}
	c.playCue(audio.CueAddressTarget)
}

// cycleTarget moves the target to the next node in layout order.
func (c *Controller) cycleTarget(now time.Time) {
	nodes := c.Map.Nodes
	if len(nodes) == 0 {
		return
	}
	next := 0
	for i, n := range nodes {
		if c.Map.Target.Is(n.Address) {
			next = (i + 1) % len(nodes)
			break
		}
	}
	c.target(nodes[next].Address, now)
}

func (c *Controller) clearTarget() {
	c.Map.Target.Clear()
	c.Target.Clear()
}

// Connect marks address as the local player.
func (c *Controller) Connect(address string, now time.Time) {
	c.Map.LocalAddress = world.NormalizeAddress(address)
	c.playCue(audio.CueConnect)
	c.setMessage("Connected as "+address, now)
}

// Disconnect forgets the local player.
func (c *Controller) Disconnect(now time.Time) {
	if c.Map.LocalAddress == "" {
		return
	}
	c.Map.LocalAddress = ""
	c.playCue(audio.CueDisconnect)
	c.setMessage("Disconnected", now)
}

// HUD returns the overlay state at now.
func (c *Controller) HUD(now time.Time) renderer.HUD {
	target := c.Target.Address()
	h := renderer.HUD{
		Target:      c.Target.Text(now),
		TargetStyle: ui.TargetStyle(target, c.Map.LocalAddress),
		Decoding:    c.Target.Decoding(now),
		Local:       c.Map.LocalAddress,
		Players:     len(c.Map.Nodes),
		Pulses:      c.Map.Tracker.Len(),
		Glyph:       c.Glyph,
		Callouts:    c.visibleCallouts(now),
	}
	if c.cues != nil {
		h.Volume = c.cues.Volume()
		h.Muted = !c.cues.Enabled()
	}
	if c.music != nil {
		st := c.music.Status()
		if st.HasSong {
			h.NowPlaying = st.Song.DisplayName()
		}
		h.Playing = st.Playing
	}
	if c.message != "" && now.Sub(c.messageAt) < messageLifetime {
		h.Message = c.message
	}
	return h
}
