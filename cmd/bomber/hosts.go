package main

import (
	"github.com/vovakirdan/tui-bomber/frontend"
	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/surface"
)

// Terminal host size used by check; the lobby sizes it from the terminal.
const (
	checkTermWidth  = 80
	checkTermHeight = 24
)

func init() {
	registry.Register("frontend", "Bundled browser page", func(surface.IDs) (*surface.Document, error) {
		return surface.ParseHTML(frontend.IndexHTML())
	})
	registry.Register("terminal", "Terminal lobby document", func(ids surface.IDs) (*surface.Document, error) {
		return tui.NewTerminalDocument(ids, checkTermWidth, checkTermHeight), nil
	})
}
