package document

import (
	"path/filepath"
	"strings"
)

func isScratch(name string) bool { return strings.HasPrefix(name, scratchPrefix) }

// Scratch reports whether l is a temporary layer created by Release.
func (l *Layer) Scratch() bool { return isScratch(l.Name) }

func dirOf(path string) string {
	if d := filepath.Dir(path); d != "" {
		return d
	}
	return "."
}
