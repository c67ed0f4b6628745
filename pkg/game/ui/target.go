// Package ui holds the collaborators the map notifies when a target is
// chosen: the decoding address field, the self/other styling hook and the
// clipboard.
package ui

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"quickhacks/pkg/game/world"
)

// Decode effect timing
const (
	DecodeMin = 600 * time.Millisecond
	DecodeMax = 800 * time.Millisecond
)

// decodeCharset is drawn from for characters not yet revealed.
const decodeCharset = "0123456789abcdefABCDEF#$%&*+=?@"

// TargetField is the address text field. Showing an address scrambles it
// and reveals it left to right over the decode window.
type TargetField struct {
	mu       sync.Mutex
	rng      *rand.Rand
	address  string
	start    time.Time
	duration time.Duration
}

// NewTargetField creates an empty field drawing randomness from rng.
func NewTargetField(rng *rand.Rand) *TargetField {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TargetField{rng: rng}
}

// Show starts decoding address at now.
func (f *TargetField) Show(address string, now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.address = address
	f.start = now
	f.duration = DecodeMin + time.Duration(f.rng.Int63n(int64(DecodeMax-DecodeMin)+1))
}

// Clear empties the field.
func (f *TargetField) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.address = ""
}

// Address returns the settled value regardless of the effect.
func (f *TargetField) Address() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address
}

// Decoding reports whether the effect is still running at now.
func (f *TargetField) Decoding(now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address != "" && now.Sub(f.start) < f.duration
}

// Duration is the length of the current decode window.
func (f *TargetField) Duration() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

// Text returns what the field displays at now.
func (f *TargetField) Text(now time.Time) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.address == "" {
		return ""
	}
	elapsed := now.Sub(f.start)
	if elapsed >= f.duration || f.duration <= 0 {
		return f.address
	}
	if elapsed < 0 {
		elapsed = 0
	}
	revealed := int(float64(len(f.address)) * float64(elapsed) / float64(f.duration))

	var b strings.Builder
	b.Grow(len(f.address))
	b.WriteString(f.address[:revealed])
	for i := revealed; i < len(f.address); i++ {
		b.WriteByte(decodeCharset[f.rng.Intn(len(decodeCharset))])
	}
	return b.String()
}

// Style distinguishes whose address is targeted.
type Style int

// Target styles
const (
	StyleNone Style = iota
	StyleSelf
	StyleOther
)

func (s Style) String() string {
	switch s {
	case StyleSelf:
		return "self"
	case StyleOther:
		return "other"
	default:
		return "none"
	}
}

// TargetStyle picks the field style for target given the connected address.
func TargetStyle(target, local string) Style {
	switch {
	case target == "":
		return StyleNone
	case local != "" && world.SameAddress(target, local):
		return StyleSelf
	default:
		return StyleOther
	}
}
