// Package layout places player nodes on the map canvas: random scatter with
// spacing and a clear zone around the contract, falling back to a grid when
// the field is too dense to scatter.
package layout

import (
	"math"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"quickhacks/pkg/engine/geom"
	"quickhacks/pkg/game/glyph"
	"quickhacks/pkg/game/world"
)

// Placement constants
const (
	ExclusionRadius = 80.0 // clear zone around the contract node
	Margin          = 40.0 // inset from the canvas edge for random placement
)

// ColorPolicy picks the fill color of a player node.
type ColorPolicy func(p world.PlayerRecord) world.NodeColor

// Uniform colors every node the same.
func Uniform(c world.NodeColor) ColorPolicy {
	return func(world.PlayerRecord) world.NodeColor { return c }
}

// SeedColors colors each node by the player's cosmetic glyph seed.
func SeedColors(p world.PlayerRecord) world.NodeColor {
	return glyph.SeedFor(p.Address).Color
}

// Options tune a layout run. The zero value is usable.
type Options struct {
	// Rand is the random source; nil uses a time-independent default seed.
	Rand *rand.Rand
	// Colors assigns node colors; nil means Uniform(world.White).
	Colors ColorPolicy
	// Attempts overrides the per-node placement budget for n players.
	Attempts func(n int) int
}

// MinSpacing is the minimum distance between scattered nodes for n players.
func MinSpacing(n int) float64 {
	return float64(max(5, 35-n/5))
}

// MaxAttempts is the default per-node placement budget for n players.
func MaxAttempts(n int) int {
	return max(10, 60-n)
}

// SizeRange returns the node size bounds for n players.
func SizeRange(n int) (minSize, maxSize float64) {
	return float64(max(4, 8-n/50)), float64(max(15, 25-n/30))
}

// Layout positions every player on a width x height canvas. Players are
// placed in input order; duplicate addresses keep their first occurrence.
func Layout(players []world.PlayerRecord, width, height float64, opts Options) []world.PlacedNode {
	players = dedupe(players)
	n := len(players)
	if n == 0 {
		return nil
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	colors := opts.Colors
	if colors == nil {
		colors = Uniform(world.White)
	}
	attempts := MaxAttempts(n)
	if opts.Attempts != nil {
		attempts = opts.Attempts(n)
	}

	center := geom.Point{X: width / 2, Y: height / 2}
	spacing := MinSpacing(n)
	minSize, maxSize := SizeRange(n)
	maxBalance := maxBalanceOf(players)

	marginX, marginY := Margin, Margin
	if width <= 2*marginX {
		marginX = 0
	}
	if height <= 2*marginY {
		marginY = 0
	}

	nodes := make([]world.PlacedNode, 0, n)
	for i, p := range players {
		pos, ok := scatter(rng, nodes, center, spacing, attempts, width, height, marginX, marginY)
		if !ok {
			pos = GridPosition(i, n, width, height)
		}
		nodes = append(nodes, world.PlacedNode{
			Address: p.Address,
			Balance: p.Balance,
			X:       pos.X,
			Y:       pos.Y,
			Size:    scaleSize(p.Balance, maxBalance, minSize, maxSize),
			Color:   colors(p),
		})
	}
	return nodes
}

// scatter samples random points until one clears the contract zone and all
// placed nodes, or the budget runs out.
func scatter(rng *rand.Rand, placed []world.PlacedNode, center geom.Point, spacing float64, attempts int, w, h, mx, my float64) (geom.Point, bool) {
	for a := 0; a < attempts; a++ {
		p := geom.Point{
			X: mx + rng.Float64()*(w-2*mx),
			Y: my + rng.Float64()*(h-2*my),
		}
		if geom.Dist(p, center) < ExclusionRadius {
			continue
		}
		if tooClose(p, placed, spacing) {
			continue
		}
		return p, true
	}
	return geom.Point{}, false
}

func tooClose(p geom.Point, placed []world.PlacedNode, spacing float64) bool {
	for _, other := range placed {
		if geom.Dist(p, other.Center()) < spacing {
			return true
		}
	}
	return false
}

// GridPosition is the deterministic fallback slot for the i-th of n players:
// a square grid of ceil(sqrt(n)) columns with each node centered in its cell.
func GridPosition(i, n int, width, height float64) geom.Point {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	cellW := width / float64(cols)
	cellH := height / float64(cols)
	return geom.Point{
		X: float64(i%cols)*cellW + cellW/2,
		Y: float64(i/cols)*cellH + cellH/2,
	}
}

// scaleSize maps balance linearly from [0, maxBalance] onto [minSize, maxSize].
func scaleSize(balance, maxBalance uint64, minSize, maxSize float64) float64 {
	if maxBalance == 0 {
		return minSize
	}
	return minSize + float64(balance)/float64(maxBalance)*(maxSize-minSize)
}

func maxBalanceOf(players []world.PlayerRecord) uint64 {
	var m uint64
	for _, p := range players {
		if p.Balance > m {
			m = p.Balance
		}
	}
	return m
}

func dedupe(players []world.PlayerRecord) []world.PlayerRecord {
	seen := mapset.New[string]()
	out := make([]world.PlayerRecord, 0, len(players))
	for _, p := range players {
		key := world.NormalizeAddress(p.Address)
		if seen.Has(key) {
			continue
		}
		seen.Put(key)
		out = append(out, p)
	}
	return out
}
