package ui

import (
	"log"

	"github.com/atotto/clipboard"
)

// Clipboard copies targeted addresses to the system clipboard.
type Clipboard struct {
	// Enabled turns copying on; headless sessions leave it off.
	Enabled bool

	write func(string) error
}

// NewClipboard returns a clipboard backed by the system one. Copying is
// disabled when no clipboard utility is available.
func NewClipboard() *Clipboard {
	return &Clipboard{
		Enabled: !clipboard.Unsupported,
		write:   clipboard.WriteAll,
	}
}

// Copy writes text, logging failures.
func (c *Clipboard) Copy(text string) bool {
	if c == nil || !c.Enabled || text == "" {
		return false
	}
	if err := c.write(text); err != nil {
		log.Printf("Cannot copy to clipboard: %v", err)
		return false
	}
	return true
}
