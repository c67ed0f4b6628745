package tui

import (
	"image/color"
	"math"
	"strings"

	gookit "github.com/gookit/color"
)

// Each terminal cell stands for a CellWidth x CellHeight block of canvas
// pixels, so the map keeps the aspect ratio it has in the window.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Glyphs used on the character raster
const (
	runeEmpty      = ' '
	runeHorizontal = '─'
	runeVertical   = '│'
	runeDiagonal   = '•'
	runeFill       = '█'
	runeCorner     = '+'
)

type cell struct {
	r rune
	c color.RGBA
}

// Surface rasterizes map drawing calls onto a grid of terminal cells.
type Surface struct {
	cols, rows int
	cells      []cell
	bg         color.RGBA
}

// NewSurface creates a surface of cols x rows terminal cells.
func NewSurface(cols, rows int) *Surface {
	s := &Surface{}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the grid, discarding its content.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 1), max(rows, 1)
	s.cells = make([]cell, s.cols*s.rows)
	s.Clear(s.bg)
}

// Grid returns the surface size in cells.
func (s *Surface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.cols) * CellWidth, float64(s.rows) * CellHeight
}

func (s *Surface) Clear(c color.RGBA) {
	s.bg = c
	for i := range s.cells {
		s.cells[i] = cell{r: runeEmpty, c: c}
	}
}

func (s *Surface) set(col, row int, r rune, c color.RGBA) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	s.cells[row*s.cols+col] = cell{r: r, c: c}
}

// At returns the rune drawn at a cell, for tests and dumps.
func (s *Surface) At(col, row int) rune {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return runeEmpty
	}
	return s.cells[row*s.cols+col].r
}

func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func (s *Surface) Line(x0, y0, x1, y1, _ float64, c color.RGBA) {
	r := runeDiagonal
	switch {
	case y0 == y1:
		r = runeHorizontal
	case x0 == x1:
		r = runeVertical
	}
	// Step at half a cell so no cell along the line is skipped.
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0)/(CellWidth/2), math.Abs(y1-y0)/(CellHeight/2))))
	if steps == 0 {
		col, row := toCell(x0, y0)
		s.set(col, row, r, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col, row := toCell(x0+(x1-x0)*t, y0+(y1-y0)*t)
		s.set(col, row, r, c)
	}
}

func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	c0, r0 := toCell(x, y)
	c1, r1 := toCell(x+w, y+h)
	r := runeFill
	if c == s.bg {
		r = runeEmpty
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			s.set(col, row, r, c)
		}
	}
}

func (s *Surface) StrokeRect(x, y, w, h, _ float64, c color.RGBA) {
	c0, r0 := toCell(x, y)
	c1, r1 := toCell(x+w, y+h)
	for col := c0; col <= c1; col++ {
		s.set(col, r0, runeHorizontal, c)
		s.set(col, r1, runeHorizontal, c)
	}
	for row := r0; row <= r1; row++ {
		s.set(c0, row, runeVertical, c)
		s.set(c1, row, runeVertical, c)
	}
	s.set(c0, r0, runeCorner, c)
	s.set(c1, r0, runeCorner, c)
	s.set(c0, r1, runeCorner, c)
	s.set(c1, r1, runeCorner, c)
}

// Label writes text centered on canvas x in the row containing canvas y,
// shifted to stay on the grid.
func (s *Surface) Label(x, y float64, text string, c color.RGBA) {
	runes := []rune(text)
	col, row := toCell(x, y)
	col -= len(runes) / 2
	col = max(0, min(col, s.cols-len(runes)))
	for i, r := range runes {
		s.set(col+i, row, r, c)
	}
}

// Render returns the grid as truecolor text, one line per row. Runs of the
// same color share one escape sequence.
func (s *Surface) Render() string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		var run strings.Builder
		runColor := s.cells[row*s.cols].c
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(gookit.RGB(runColor.R, runColor.G, runColor.B).Sprint(run.String()))
			run.Reset()
		}
		for col := 0; col < s.cols; col++ {
			cl := s.cells[row*s.cols+col]
			if cl.c != runColor {
				flush()
				runColor = cl.c
			}
			run.WriteRune(cl.r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

// String returns the grid as plain runes.
func (s *Surface) String() string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			b.WriteRune(s.cells[row*s.cols+col].r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
