package tui

import (
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/surface"
)

// NewTerminalDocument builds the host document the lobby runs on: a stats
// region, a matchfield canvas of w×h terminal cells whose 2D context is a
// core.Screen, and a ready button.
func NewTerminalDocument(ids surface.IDs, w, h int) *surface.Document {
	doc := surface.NewDocument()
	doc.SetContextFactory(func(w, h int) surface.Context2D {
		return core.NewScreen(w, h)
	})

	doc.Append(nil, "div", ids.Stats)
	doc.AppendCanvas(nil, ids.Matchfield, w, h)
	ready := doc.Append(nil, "button", ids.ReadyButton)
	ready.SetText("Ready")

	return doc
}
