package tui

import (
	"strings"
	"testing"

	"quickhacks/pkg/game/world"
)

func TestSurface_Size(t *testing.T) {
	s := NewSurface(10, 5)
	w, h := s.Size()
	if w != 10*CellWidth || h != 5*CellHeight {
		t.Errorf("Size() = %f,%f", w, h)
	}
}

func TestSurface_LineOrientation(t *testing.T) {
	s := NewSurface(10, 5)
	s.Line(0, 8, 79, 8, 1, world.ColorWhite)
	for col := 0; col < 10; col++ {
		if s.At(col, 0) != runeHorizontal {
			t.Fatalf("horizontal line missing at col %d:\n%s", col, s)
		}
	}
	s.Line(4, 0, 4, 79, 1, world.ColorWhite)
	for row := 1; row < 5; row++ {
		if s.At(0, row) != runeVertical {
			t.Fatalf("vertical line missing at row %d:\n%s", row, s)
		}
	}
}

func TestSurface_FillAndStroke(t *testing.T) {
	s := NewSurface(10, 5)
	s.Clear(world.ColorBackground)
	s.FillRect(8, 16, 8, 16, world.ColorRed)
	if s.At(1, 1) != runeFill {
		t.Errorf("fill missing:\n%s", s)
	}
	s.FillRect(8, 16, 8, 16, world.ColorBackground)
	if s.At(1, 1) != runeEmpty {
		t.Errorf("background fill should blank the cell:\n%s", s)
	}
	s.StrokeRect(8, 16, 24, 32, 1, world.ColorWhite)
	if s.At(1, 1) != runeCorner || s.At(4, 3) != runeCorner {
		t.Errorf("corners missing:\n%s", s)
	}
}

func TestSurface_ClipsOutside(t *testing.T) {
	s := NewSurface(4, 2)
	s.Line(-100, -100, 1000, 1000, 1, world.ColorWhite)
	s.FillRect(1000, 1000, 10, 10, world.ColorRed)
	if strings.Count(s.String(), "\n") != 2 {
		t.Errorf("raster grew:\n%s", s)
	}
}

func TestSurface_RenderKeepsRows(t *testing.T) {
	s := NewSurface(6, 3)
	s.Line(0, 0, 47, 0, 1, world.ColorWhite)
	out := s.Render()
	if strings.Count(out, "\n") != 3 {
		t.Errorf("Render produced %d rows", strings.Count(out, "\n"))
	}
	if !strings.Contains(out, string(runeHorizontal)) {
		t.Errorf("Render lost line runes: %q", out)
	}
}

func TestSurface_LabelStaysOnGrid(t *testing.T) {
	s := NewSurface(10, 3)
	s.Clear(world.ColorBackground)
	s.Label(40, 20, "HACK", world.ColorRed)
	if got := strings.TrimSpace(strings.Split(s.String(), "\n")[1]); got != "HACK" {
		t.Errorf("centered label row = %q", got)
	}
	if s.At(3, 1) != 'H' {
		t.Errorf("label should start at col 3, got %q", s.At(3, 1))
	}

	s.Label(76, 0, "EDGE", world.ColorRed)
	if s.At(9, 0) != 'E' || s.At(6, 0) != 'E' {
		t.Errorf("label should be pushed left of the edge:\n%s", s)
	}
}
