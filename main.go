package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/leonelquinteros/gotext"

	"quickhacks/pkg/engine/audio"
	"quickhacks/pkg/engine/terminal"
	"quickhacks/pkg/game/config"
	"quickhacks/pkg/game/devtools"
	"quickhacks/pkg/game/feed"
	"quickhacks/pkg/game/gameplay"
	"quickhacks/pkg/game/glyph"
	"quickhacks/pkg/game/layout"
	"quickhacks/pkg/game/renderer"
	ebitenRenderer "quickhacks/pkg/game/renderer/ebiten"
	"quickhacks/pkg/game/renderer/tui"
	"quickhacks/pkg/game/ui"
	"quickhacks/pkg/game/world"
)

// flags holds command-line overrides. Empty or zero values keep the config.
type flags struct {
	tui        bool
	configPath string
	subgraph   string
	events     string
	address    string
	seed       string
	colors     string
	sounds     string
	songs      string
	lang       string
	width      int
	height     int
	maxPulses  int
	screenshot string
	dev        int
}

func parseFlags() flags {
	var f flags
	flag.BoolVar(&f.tui, "tui", false, "render in the terminal instead of a window")
	flag.StringVar(&f.configPath, "config", config.DefaultPath(), "preferences file")
	flag.StringVar(&f.subgraph, "subgraph", "", "GraphQL endpoint for the player list")
	flag.StringVar(&f.events, "events", "", "websocket endpoint for live game events")
	flag.StringVar(&f.address, "address", "", "your own player address")
	flag.StringVar(&f.seed, "seed", "", "profile glyph seed, e.g. 123456-0-W")
	flag.StringVar(&f.colors, "colors", "", "node colors: uniform or seed")
	flag.StringVar(&f.sounds, "sounds", "", "directory of sound cue mp3 files")
	flag.StringVar(&f.songs, "songs", "", "directory of music mp3 files")
	flag.StringVar(&f.lang, "lang", "", "interface language")
	flag.IntVar(&f.width, "width", 1024, "window width")
	flag.IntVar(&f.height, "height", 768, "window height")
	flag.IntVar(&f.maxPulses, "max-pulses", 0, "cap on concurrently animated pulses")
	flag.StringVar(&f.screenshot, "screenshot", "", "render one frame to this PNG file and exit")
	flag.IntVar(&f.dev, "dev", 0, "use N synthetic players instead of the subgraph (for developer testing)")
	flag.Parse()
	return f
}

// apply folds non-empty flags into cfg. The result is not persisted.
func (f flags) apply(cfg config.Config) config.Config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.SubgraphURL, f.subgraph)
	set(&cfg.EventsURL, f.events)
	set(&cfg.LocalAddress, f.address)
	set(&cfg.GlyphSeed, f.seed)
	set(&cfg.Colors, f.colors)
	set(&cfg.SoundsDir, f.sounds)
	set(&cfg.SongsDir, f.songs)
	set(&cfg.Language, f.lang)
	if f.maxPulses > 0 {
		cfg.MaxPulses = f.maxPulses
	}
	return cfg
}

func initGettext(lang string) {
	gotext.Configure("locales", lang, "default")
}

// buildSource picks the player list source.
func buildSource(f flags, cfg config.Config, rng *rand.Rand) feed.Source {
	if f.dev > 0 {
		log.Printf("Using %d synthetic players", f.dev)
		return feed.Static{Players: devtools.DevPlayers(f.dev, rng)}
	}
	if cfg.SubgraphURL == "" {
		log.Printf("No subgraph URL configured, the map will stay empty")
		return feed.Static{}
	}
	return feed.NewSubgraph(cfg.SubgraphURL)
}

// sound bundles the audio collaborators so main can close them.
type sound struct {
	speaker *audio.Speaker
	cues    *audio.CueBank
	music   *audio.MusicPlayer
}

// buildSound opens the audio device and loads cues and songs. Audio is
// optional: every failure is logged and the map runs silent.
func buildSound(cfg config.Config, rng *rand.Rand) *sound {
	s := &sound{speaker: audio.NewSpeaker()}
	var out audio.Output = s.speaker
	if err := s.speaker.Initialize(); err != nil {
		log.Printf("Audio disabled: %v", err)
		out = nil
	}

	s.cues = audio.NewCueBank(cfg.SoundsDir, out)
	if err := s.cues.Load(); err != nil {
		log.Printf("Sound cues unavailable: %v", err)
	}
	s.cues.SetVolume(cfg.Volume)
	s.cues.SetEnabled(!cfg.Muted)

	songs, err := audio.DiscoverSongs(cfg.SongsDir)
	if err != nil {
		log.Printf("Music unavailable: %v", err)
	}
	if len(songs) > 0 && out != nil {
		playlist := audio.NewPlaylist(songs, rng)
		if cfg.Shuffle {
			playlist.ToggleShuffle()
		}
		s.music = audio.NewMusicPlayer(playlist, out)
		s.music.SetVolume(cfg.MusicVolume)
		log.Printf("Loaded %d songs", len(songs))
	}
	return s
}

func (s *sound) close() {
	if s.music != nil {
		s.music.Close()
	}
	s.speaker.Cleanup()
}

func colorPolicy(mode string) layout.ColorPolicy {
	if mode == config.ColorsSeed {
		return layout.SeedColors
	}
	return layout.Uniform(world.White)
}

func glyphSeed(text string) *glyph.Seed {
	if text == "" {
		return nil
	}
	seed, err := glyph.ParseSeed(text)
	if err != nil {
		log.Printf("Ignoring glyph seed: %v", err)
		return nil
	}
	return &seed
}

// runStream follows the live event feed until ctx ends.
func runStream(ctx context.Context, url string, c *gameplay.Controller) {
	stream := feed.NewStream(url)
	stream.OnConnect = func() { c.Notify("Event stream connected") }
	stream.OnDisconnect = func() { c.Notify("Event stream lost, reconnecting") }

	events := make(chan feed.Event, 64)
	go c.Consume(ctx, events)
	stream.Run(ctx, events)
}

// writeScreenshot renders one frame headless after a blocking fetch.
func writeScreenshot(ctx context.Context, c *gameplay.Controller, path string) error {
	if r := c.Refresh(ctx); !r.OK() {
		log.Printf("Rendering an empty map: %v", r.Err)
	}
	now := time.Now()
	c.Update(now)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating screenshot: %w", err)
	}
	defer file.Close()
	if err := devtools.WriteScreenshot(file, c.Map, now); err != nil {
		return err
	}
	return file.Close()
}

func main() {
	f := parseFlags()

	fileCfg, err := config.Load(f.configPath)
	if err != nil {
		log.Printf("Using default preferences: %v", err)
	}
	cfg := f.apply(fileCfg)
	if n := config.ApplyKeyBindings(cfg); n > 0 {
		log.Printf("Applied %d custom key bindings", n)
	}

	initGettext(cfg.Language)
	renderer.InitColors()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var snd *sound
	opts := gameplay.Options{
		Source:    buildSource(f, cfg, rng),
		Rand:      rng,
		GlyphSeed: glyphSeed(cfg.GlyphSeed),
	}
	if f.screenshot == "" {
		snd = buildSound(cfg, rng)
		defer snd.close()
		opts.Cues = snd.cues
		if snd.music != nil {
			opts.Music = snd.music
		}
		opts.Clipboard = ui.NewClipboard()
	}

	c := gameplay.NewController(float64(f.width), float64(f.height), opts)
	c.Map.Colors = colorPolicy(cfg.Colors)
	c.Map.Tracker.MaxActive = cfg.MaxPulses

	if f.screenshot != "" {
		if err := writeScreenshot(ctx, c, f.screenshot); err != nil {
			log.Fatal(err)
		}
		renderer.ColorLabel.Printf("Saved %s\n", f.screenshot)
		return
	}

	now := time.Now()
	if cfg.LocalAddress != "" {
		c.Connect(cfg.LocalAddress, now)
	}
	c.Start(ctx)
	if cfg.EventsURL != "" {
		go runStream(ctx, cfg.EventsURL, c)
	}

	if f.tui {
		if !terminal.IsTerminal() {
			log.Fatal("-tui needs an interactive terminal on stdout")
		}
		renderer.SetRenderer(tui.New())
	} else {
		renderer.SetRenderer(ebitenRenderer.New(f.width, f.height))
	}
	if err := renderer.Current.Init(); err != nil {
		log.Fatal(err)
	}
	if err := renderer.Current.Run(c); err != nil {
		log.Fatal(err)
	}

	stop()
	fmt.Println(renderer.FormatString("SUBTLE{%s}", gotext.Get("GOODBYE")))
}
