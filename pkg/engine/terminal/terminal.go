package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24

	// Smallest map raster worth drawing
	MinMapCols = 20
	MinMapRows = 5
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// MapGrid returns the cells left for the map after reserving rows for text
// below it, never smaller than MinMapCols x MinMapRows.
func MapGrid(reservedRows int) (cols, rows int) {
	w, h := GetSize()
	return max(w, MinMapCols), max(h-reservedRows, MinMapRows)
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
