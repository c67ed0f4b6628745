// Package audio plays the map's sound cues and background music through
// a shared beep mixer.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// resampleQuality is passed to beep.Resample for files at another rate.
	resampleQuality = 4
)

// Output accepts streamers to mix into the audio device.
type Output interface {
	Play(s beep.Streamer)
}

// Speaker mixes streamers onto the system audio device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates a speaker; call Initialize before playing.
func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Initialized reports whether the device is open.
func (s *Speaker) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Play adds st to the mixer. Without a device it is dropped.
func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Cleanup silences everything still playing
func (s *Speaker) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// ClampVolume limits a linear volume to [0, 1].
func ClampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// withVolume wraps st in a gain stage for a linear volume in [0, 1].
func withVolume(st beep.Streamer, v float64) *effects.Volume {
	v = ClampVolume(v)
	vol := &effects.Volume{Streamer: st, Base: 2}
	if v == 0 {
		vol.Silent = true
		return vol
	}
	vol.Volume = math.Log2(v)
	return vol
}

// setGain updates an existing gain stage in place.
func setGain(vol *effects.Volume, v float64) {
	v = ClampVolume(v)
	vol.Silent = v == 0
	if v > 0 {
		vol.Volume = math.Log2(v)
	}
}

// toOutputRate resamples st when its format differs from the mixer's.
func toOutputRate(st beep.Streamer, format beep.Format) beep.Streamer {
	if format.SampleRate == sampleRate {
		return st
	}
	return beep.Resample(resampleQuality, format.SampleRate, sampleRate, st)
}
