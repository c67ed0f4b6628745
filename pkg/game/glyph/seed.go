// Package glyph generates the procedural profile glyphs shown for a player:
// a symmetric 25x25 pixel pattern derived from a seed string.
package glyph

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"

	"quickhacks/pkg/game/world"
)

// Seed bounds: seeds are always six digits.
const (
	minSeed = 100000
	maxSeed = 999999
)

// Seed identifies a glyph: pattern number, rotation in degrees and color.
// Its text form is "NNNNNN-R-C", e.g. "482913-90-W".
type Seed struct {
	Number   int
	Rotation int
	Color    world.NodeColor
}

// String returns the seed in its "number-rotation-color" form.
func (s Seed) String() string {
	return fmt.Sprintf("%d-%d-%s", s.Number, s.Rotation, s.Color)
}

// ParseSeed parses "number-rotation-color". The color part is optional and
// defaults to white.
func ParseSeed(text string) (Seed, error) {
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) < 2 || len(parts) > 3 {
		return Seed{}, fmt.Errorf("glyph seed %q: want number-rotation-color", text)
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return Seed{}, fmt.Errorf("glyph seed %q: number: %w", text, err)
	}
	if n < minSeed || n > maxSeed {
		return Seed{}, fmt.Errorf("glyph seed %q: number out of range", text)
	}
	rot, err := strconv.Atoi(parts[1])
	if err != nil {
		return Seed{}, fmt.Errorf("glyph seed %q: rotation: %w", text, err)
	}
	if rot%90 != 0 || rot < 0 || rot >= 360 {
		return Seed{}, fmt.Errorf("glyph seed %q: rotation must be 0, 90, 180 or 270", text)
	}
	s := Seed{Number: n, Rotation: rot, Color: world.White}
	if len(parts) == 3 {
		s.Color = world.ParseNodeColor(parts[2])
	}
	return s, nil
}

// NewSeed returns a fresh random white, unrotated seed.
func NewSeed(rng *rand.Rand) Seed {
	return Seed{Number: minSeed + rng.Intn(maxSeed-minSeed+1), Color: world.White}
}

// Rotate turns the glyph a further 90 degrees.
func (s Seed) Rotate() Seed {
	s.Rotation = (s.Rotation + 90) % 360
	return s
}

// SeedFor derives a stable cosmetic seed from a player address, so the same
// player keeps the same glyph and color across refreshes.
func SeedFor(address string) Seed {
	h := fnv.New64a()
	h.Write([]byte(world.NormalizeAddress(address)))
	sum := h.Sum64()
	return Seed{
		Number:   minSeed + int(sum%uint64(maxSeed-minSeed+1)),
		Rotation: int((sum>>20)%4) * 90,
		Color:    world.NodeColor((sum >> 40) % 3),
	}
}
