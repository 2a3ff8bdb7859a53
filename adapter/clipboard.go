// Package adapter wires editor.Control's collaborator interfaces to real
// OS and runtime facilities: the system clipboard and a wall-clock timer
// host for the auto-scroll tick.
package adapter

import (
	"github.com/atotto/clipboard"
)

// SystemClipboard implements editor.Clipboard over the OS clipboard via
// atotto/clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

func (SystemClipboard) Paste() (string, bool) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", false
	}
	return text, true
}
