package input

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/term"
)

// RawMode puts stdin into raw mode and returns a function restoring it.
func RawMode() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, err
	}
	return func() {
		if err := term.Restore(fd, oldState); err != nil {
			log.Printf("Cannot restore terminal: %v", err)
		}
	}, nil
}

// tryReadArrowKey attempts to read an arrow key escape sequence after ESC.
// A lone ESC (or an unknown sequence) is reported as "escape".
func tryReadArrowKey(r *bufio.Reader) string {
	if r.Buffered() == 0 {
		return "escape"
	}
	b2, err := r.ReadByte()
	if err != nil {
		return "escape"
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "escape"
	}
	b3, err := r.ReadByte()
	if err != nil {
		return "escape"
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	return "escape"
}

// ReadKey reads one key press from r and returns its binding code.
func ReadKey(r *bufio.Reader) (string, error) {
	b, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	switch {
	case b == 0x1b:
		return tryReadArrowKey(r), nil
	case b == 3: // Ctrl+C
		return "quit", nil
	case b == ' ':
		return "space", nil
	case b == '\t':
		return "tab", nil
	case b == '\n' || b == '\r':
		return "enter", nil
	case b >= 32 && b < 127:
		return string(rune(b)), nil
	}
	return "", nil
}

// ReadKeys forwards key presses from src as terminal RawInput until ctx is
// done or src fails.
func ReadKeys(ctx context.Context, src io.Reader, out chan<- RawInput) {
	r := bufio.NewReader(src)
	for {
		code, err := ReadKey(r)
		if err != nil {
			if err != io.EOF {
				log.Printf("Cannot read key: %v", err)
			}
			return
		}
		if code == "" {
			continue
		}
		select {
		case out <- RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}:
		case <-ctx.Done():
			return
		}
	}
}
