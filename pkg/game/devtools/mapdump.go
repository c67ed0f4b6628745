package devtools

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"time"

	"quickhacks/pkg/game/renderer"
	"quickhacks/pkg/game/renderer/tui"
	"quickhacks/pkg/game/state"
	"quickhacks/pkg/game/world"
)

const mapDumpFilename = "map.txt"

// Overview grid size for the dump
const (
	dumpCols = 100
	dumpRows = 40
)

// WriteMapDump writes a text dump of m: metadata, a character overview of
// the frame, then every node and pulse. Format is key: value per line.
func WriteMapDump(w io.Writer, m *state.Map, now time.Time) error {
	fmt.Fprintln(w, "=== MAP DUMP (layout, nodes, pulses) ===")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "time: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(w, "canvas: %.0fx%.0f\n", m.Width, m.Height)
	fmt.Fprintf(w, "players: %d\n", len(m.Players))
	fmt.Fprintf(w, "nodes: %d\n", len(m.Nodes))
	fmt.Fprintf(w, "total_balance: %d\n", world.TotalBalance(m.Players))
	fmt.Fprintf(w, "target: %q\n", m.Target.Address())
	fmt.Fprintf(w, "local: %q\n", m.LocalAddress)
	if c, ok := m.ContractNode(); ok {
		fmt.Fprintf(w, "contract: x: %.1f y: %.1f size: %.1f\n", c.X, c.Y, c.Size)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Overview ---")
	grid := tui.NewSurface(dumpCols, dumpRows)
	overview := *m
	overview.Tracker = nil
	renderer.DrawFrame(&overview, scaled{grid, m.Width, m.Height}, now)
	fmt.Fprint(w, grid.String())
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Nodes (layout order) ---")
	for i, n := range m.Nodes {
		fmt.Fprintf(w, "  %d: address: %s balance: %d x: %.1f y: %.1f size: %.1f color: %s reserved: %v\n",
			i, n.Address, n.Balance, n.X, n.Y, n.Size, n.Color, world.IsReserved(n.Address))
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Pulses ---")
	if m.Tracker != nil {
		for _, p := range m.Tracker.Pulses() {
			fmt.Fprintf(w, "  kind: %s source: %s target: %s phase: %s progress: %.2f\n",
				p.Kind, p.Source, p.Target, p.Phase(now), p.Progress)
		}
	}
	return nil
}

// scaled maps canvas coordinates onto a surface of a different size.
type scaled struct {
	renderer.Surface
	width, height float64
}

func (s scaled) Size() (float64, float64) {
	return s.width, s.height
}

func (s scaled) factors() (float64, float64) {
	w, h := s.Surface.Size()
	if s.width == 0 || s.height == 0 {
		return 1, 1
	}
	return w / s.width, h / s.height
}

func (s scaled) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	fx, fy := s.factors()
	s.Surface.Line(x0*fx, y0*fy, x1*fx, y1*fy, width, c)
}

func (s scaled) FillRect(x, y, w, h float64, c color.RGBA) {
	fx, fy := s.factors()
	s.Surface.FillRect(x*fx, y*fy, w*fx, h*fy, c)
}

func (s scaled) StrokeRect(x, y, w, h, width float64, c color.RGBA) {
	fx, fy := s.factors()
	s.Surface.StrokeRect(x*fx, y*fy, w*fx, h*fy, width, c)
}

// SaveMapDump writes the dump to map.txt and returns its absolute path.
func SaveMapDump(m *state.Map, now time.Time) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteMapDump(f, m, now); err != nil {
		return "", err
	}
	return absPath, nil
}
