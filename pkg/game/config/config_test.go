package config

import (
	"os"
	"path/filepath"
	"testing"

	"quickhacks/pkg/engine/input"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"QUICKHACKS_SUBGRAPH_URL", "QUICKHACKS_EVENTS_URL", "QUICKHACKS_ADDRESS", "QUICKHACKS_MUTED", "QUICKHACKS_VOLUME"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Volume != 0.3 || cfg.Colors != ColorsUniform || cfg.MaxPulses != 256 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_NormalizesValues(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(p, []byte(`{"volume": 4, "music_volume": -1, "colors": "rainbow", "max_pulses": -3, "subgraph_url": "http://x"}`), 0o644)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Volume != 1 || cfg.MusicVolume != 0 || cfg.Colors != ColorsUniform || cfg.MaxPulses != 256 {
		t.Errorf("normalized = %+v", cfg)
	}
	if cfg.SubgraphURL != "http://x" {
		t.Errorf("SubgraphURL = %q", cfg.SubgraphURL)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(p, []byte(`{`), 0o644)
	if _, err := Load(p); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUICKHACKS_VOLUME", "50")
	t.Setenv("QUICKHACKS_MUTED", "true")
	t.Setenv("QUICKHACKS_ADDRESS", "0xabc")
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Volume != 0.5 || !cfg.Muted || cfg.LocalAddress != "0xabc" {
		t.Errorf("env overrides = %+v", cfg)
	}
}

func TestSettersPersist(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "sub", "config.json")
	if _, err := Load(p); err != nil {
		t.Fatalf("Load: %v", err)
	}
	SetVolume(0.8)
	SetMusicVolume(2)
	SetShuffle(true)
	SetMuted(true)
	SetGlyphSeed("123456-90-P")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Volume != 0.8 || cfg.MusicVolume != 1 || !cfg.Shuffle || !cfg.Muted || cfg.GlyphSeed != "123456-90-P" {
		t.Errorf("reloaded = %+v", cfg)
	}
	if cur := Current(); cur.Volume != cfg.Volume || cur.GlyphSeed != cfg.GlyphSeed {
		t.Errorf("Current() = %+v", cur)
	}
}

func TestApplyKeyBindings(t *testing.T) {
	t.Cleanup(func() { input.SetSingleBinding(input.ActionMapDump, "f9") })

	n := ApplyKeyBindings(Config{KeyBindings: map[string]string{
		"map dump": "F8",
		"juggle":   "j",
	}})
	if n != 1 {
		t.Errorf("applied %d, want 1", n)
	}
	if got := input.Translate(input.RawInput{Code: "f8"}); got.Action != input.ActionMapDump {
		t.Errorf("f8 -> %v", got.Action)
	}
	if got := input.Translate(input.RawInput{Code: "f9"}); got.Action == input.ActionMapDump {
		t.Error("old binding still active")
	}
}
