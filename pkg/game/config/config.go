// Package config holds user preferences for the map, persisted as JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"quickhacks/pkg/engine/input"
)

// Color modes for player nodes
const (
	ColorsUniform = "uniform"
	ColorsSeed    = "seed"
)

// Config is the persisted preference set.
type Config struct {
	SubgraphURL  string  `json:"subgraph_url"`
	EventsURL    string  `json:"events_url,omitempty"`
	LocalAddress string  `json:"local_address,omitempty"`
	SoundsDir    string  `json:"sounds_dir"`
	SongsDir     string  `json:"songs_dir"`
	Language     string  `json:"language"`
	Colors       string  `json:"colors"`
	MaxPulses    int     `json:"max_pulses"`
	Muted        bool    `json:"muted"`
	Volume       float64 `json:"volume"`
	MusicVolume  float64 `json:"music_volume"`
	Shuffle      bool    `json:"shuffle"`
	GlyphSeed    string  `json:"glyph_seed,omitempty"`

	// KeyBindings maps action names (as shown in the help) to a key code.
	KeyBindings map[string]string `json:"key_bindings,omitempty"`
}

// Default returns the built-in preferences.
func Default() Config {
	return Config{
		SoundsDir:   "sounds",
		SongsDir:    "songs",
		Language:    "en",
		Colors:      ColorsUniform,
		MaxPulses:   256,
		Volume:      0.3,
		MusicVolume: 0.3,
	}
}

var (
	mu      sync.Mutex
	current = Default()
	path    string
)

// DefaultPath is ~/.config/quickhacks/config.json, or config.json in the
// working directory when there is no user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(dir, "quickhacks", "config.json")
}

// Load reads the file at p over the defaults and makes it current. A
// missing file is not an error. Environment overrides are applied last.
func Load(p string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", p, err)
		}
	}
	applyEnv(&cfg)
	cfg.normalize()

	mu.Lock()
	current = cfg
	path = p
	mu.Unlock()
	return cfg, nil
}

// applyEnv lets QUICKHACKS_* variables override the file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("QUICKHACKS_SUBGRAPH_URL"); v != "" {
		cfg.SubgraphURL = v
	}
	if v := os.Getenv("QUICKHACKS_EVENTS_URL"); v != "" {
		cfg.EventsURL = v
	}
	if v := os.Getenv("QUICKHACKS_ADDRESS"); v != "" {
		cfg.LocalAddress = v
	}
	if v := os.Getenv("QUICKHACKS_MUTED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Muted = b
		}
	}
	// 0-100 like a mixer slider.
	if v := os.Getenv("QUICKHACKS_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Volume = float64(n) / 100
		}
	}
}

func (c *Config) normalize() {
	c.Volume = clamp01(c.Volume)
	c.MusicVolume = clamp01(c.MusicVolume)
	if c.MaxPulses <= 0 {
		c.MaxPulses = Default().MaxPulses
	}
	if c.Colors != ColorsSeed {
		c.Colors = ColorsUniform
	}
	if c.Language == "" {
		c.Language = "en"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Current returns a copy of the active preferences.
func Current() Config {
	mu.Lock()
	defer mu.Unlock()
	c := current
	if current.KeyBindings != nil {
		c.KeyBindings = make(map[string]string, len(current.KeyBindings))
		for k, v := range current.KeyBindings {
			c.KeyBindings[k] = v
		}
	}
	return c
}

// Save writes the active preferences to the file they were loaded from.
func Save() error {
	mu.Lock()
	cfg, p := current, path
	mu.Unlock()
	if p == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func update(fn func(c *Config)) {
	mu.Lock()
	fn(&current)
	mu.Unlock()
	if err := Save(); err != nil {
		log.Printf("Cannot save preferences: %v", err)
	}
}

// SetVolume stores the cue volume
func SetVolume(v float64) {
	update(func(c *Config) { c.Volume = clamp01(v) })
}

// SetMusicVolume stores the music volume
func SetMusicVolume(v float64) {
	update(func(c *Config) { c.MusicVolume = clamp01(v) })
}

// SetMuted stores the mute toggle
func SetMuted(m bool) {
	update(func(c *Config) { c.Muted = m })
}

// SetShuffle stores the shuffle toggle
func SetShuffle(s bool) {
	update(func(c *Config) { c.Shuffle = s })
}

// SetGlyphSeed stores the profile glyph seed
func SetGlyphSeed(seed string) {
	update(func(c *Config) { c.GlyphSeed = seed })
}

// ApplyKeyBindings rebinds actions named in the config. Unknown action
// names are logged and skipped.
func ApplyKeyBindings(cfg Config) int {
	applied := 0
	for name, code := range cfg.KeyBindings {
		act, ok := input.ParseAction(name)
		if !ok {
			log.Printf("Unknown action %q in key bindings", name)
			continue
		}
		input.SetSingleBinding(act, code)
		applied++
	}
	return applied
}
