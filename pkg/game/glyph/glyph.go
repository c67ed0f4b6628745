package glyph

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"math/rand"
	"strings"

	xdraw "golang.org/x/image/draw"

	"quickhacks/pkg/game/world"
)

// GridSize is the number of cells along each side of a glyph.
const GridSize = 25

// Render constants
const (
	minCellSize = 8
	glyphFill   = 0.85
)

var (
	colorGlyphBackground = color.RGBA{0x17, 0x1a, 0x1d, 0xff}
	colorGlyphBase       = color.RGBA{0xd9, 0xd8, 0xeb, 0xff}
)

// pattern is one symmetric fill strategy.
type pattern int

const (
	patternBilateral pattern = iota
	patternMandala
	patternSimpleDots
)

func (p pattern) String() string {
	switch p {
	case patternBilateral:
		return "Bilateral"
	case patternMandala:
		return "Mandala"
	case patternSimpleDots:
		return "Simple Dots"
	default:
		return "Unknown"
	}
}

// combinations are the pattern stacks a seed can pick from.
var combinations = [][]pattern{
	{patternMandala, patternBilateral},
	{patternBilateral},
	{patternSimpleDots},
}

// Glyph is a generated profile pattern. Cells[x][y] is true when filled.
type Glyph struct {
	Seed    Seed
	Cells   [GridSize][GridSize]bool
	Pattern string
}

// Generate builds the glyph for a seed. The same seed always yields the same
// pattern; rotation and color are applied at render time.
func Generate(seed Seed) *Glyph {
	g := &Glyph{Seed: seed}
	rng := rand.New(rand.NewSource(int64(seed.Number)))

	combo := combinations[rng.Intn(len(combinations))]
	names := make([]string, 0, len(combo))
	for _, p := range combo {
		names = append(names, p.String())
		switch p {
		case patternBilateral:
			g.bilateral(rng)
		case patternMandala:
			g.mandala(rng)
		case patternSimpleDots:
			g.simpleDots(rng)
		}
	}
	g.Pattern = strings.Join(names, " + ")
	return g
}

// Color returns the glyph's fill color.
func (g *Glyph) Color() world.NodeColor {
	return g.Seed.Color
}

// Filled returns the number of filled cells.
func (g *Glyph) Filled() int {
	n := 0
	for x := range g.Cells {
		for y := range g.Cells[x] {
			if g.Cells[x][y] {
				n++
			}
		}
	}
	return n
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func (g *Glyph) set(x, y int) {
	if x >= 0 && x < GridSize && y >= 0 && y < GridSize {
		g.Cells[x][y] = true
	}
}

// bilateral mirrors random cells across the vertical or horizontal axis.
func (g *Glyph) bilateral(rng *rand.Rand) {
	vertical := rng.Intn(2) == 0
	density := between(rng, 0.15, 0.35)
	center := GridSize / 2

	if vertical {
		for i := 0; i < center; i++ {
			for j := 0; j < GridSize; j++ {
				if rng.Float64() < density {
					g.set(i, j)
					g.set(GridSize-1-i, j)
				}
			}
		}
		return
	}
	for i := 0; i < GridSize; i++ {
		for j := 0; j < center; j++ {
			if rng.Float64() < density {
				g.set(i, j)
				g.set(i, GridSize-1-j)
			}
		}
	}
}

// mandala scatters points on concentric rings with four-fold symmetry.
func (g *Glyph) mandala(rng *rand.Rand) {
	density := between(rng, 0.2, 0.4)
	rings := int(between(rng, 3, 7))
	center := GridSize / 2

	for ring := 1; ring <= rings; ring++ {
		radius := float64(ring) / float64(rings) * float64(center-2)
		points := int(math.Max(8, math.Floor(2*math.Pi*radius/3)))
		for pt := 0; pt < points; pt++ {
			if rng.Float64() >= density {
				continue
			}
			angle := float64(pt) / float64(points) * 2 * math.Pi
			x := int(math.Round(float64(center) + radius*math.Cos(angle)))
			y := int(math.Round(float64(center) + radius*math.Sin(angle)))
			g.set(x, y)
			g.set(GridSize-1-x, y)
			g.set(x, GridSize-1-y)
			g.set(GridSize-1-x, GridSize-1-y)
		}
	}
}

// simpleDots sprinkles clusters and replicates every hit across all eight
// symmetries of the square.
func (g *Glyph) simpleDots(rng *rand.Rand) {
	density := between(rng, 0.08, 0.15)
	clusters := int(between(rng, 3, 8))

	for c := 0; c < clusters; c++ {
		cx := int(between(rng, 2, GridSize-2))
		cy := int(between(rng, 2, GridSize-2))
		radius := between(rng, 2, 5)
		for i := 0; i < GridSize; i++ {
			for j := 0; j < GridSize; j++ {
				d := math.Hypot(float64(i-cx), float64(j-cy))
				if d <= radius && rng.Float64() < density {
					g.setOctets(i, j)
				}
			}
		}
	}
}

func (g *Glyph) setOctets(x, y int) {
	last := GridSize - 1
	g.set(x, y)
	g.set(last-x, y)
	g.set(x, last-y)
	g.set(last-x, last-y)
	g.set(y, x)
	g.set(last-y, x)
	g.set(y, last-x)
	g.set(last-y, last-x)
}

// rotated returns the cell grid turned clockwise by the seed rotation.
func (g *Glyph) rotated() [GridSize][GridSize]bool {
	out := g.Cells
	for turns := (g.Seed.Rotation / 90) % 4; turns > 0; turns-- {
		var next [GridSize][GridSize]bool
		for x := 0; x < GridSize; x++ {
			for y := 0; y < GridSize; y++ {
				next[GridSize-1-y][x] = out[x][y]
			}
		}
		out = next
	}
	return out
}

// fillColor uses a slightly brighter white than the map palette.
func fillColor(c world.NodeColor) color.RGBA {
	if c == world.White {
		return colorGlyphBase
	}
	return c.RGBA()
}

// Image renders the glyph centered on a size x size canvas.
func (g *Glyph) Image(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{colorGlyphBackground}, image.Point{}, draw.Src)

	cell := int(math.Max(minCellSize, math.Floor(float64(size)*glyphFill/GridSize)))
	total := GridSize * cell
	origin := (size - total) / 2
	fill := &image.Uniform{fillColor(g.Seed.Color)}

	cells := g.rotated()
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if !cells[x][y] {
				continue
			}
			r := image.Rect(origin+x*cell, origin+y*cell, origin+(x+1)*cell, origin+(y+1)*cell)
			draw.Draw(img, r.Intersect(img.Bounds()), fill, image.Point{}, draw.Src)
		}
	}
	return img
}

// Thumbnail renders one pixel per cell and scales it up to size with
// nearest-neighbor sampling so the cells stay crisp.
func (g *Glyph) Thumbnail(size int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, GridSize, GridSize))
	draw.Draw(src, src.Bounds(), &image.Uniform{colorGlyphBackground}, image.Point{}, draw.Src)
	fill := fillColor(g.Seed.Color)
	cells := g.rotated()
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if cells[x][y] {
				src.SetRGBA(x, y, fill)
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// WritePNG encodes the glyph rendered at size as a PNG.
func (g *Glyph) WritePNG(w io.Writer, size int) error {
	return png.Encode(w, g.Image(size))
}
