// Package frontend embeds the reference browser page whose element ids the
// surface contract is checked against.
package frontend

import (
	"bytes"
	_ "embed"
	"io"
)

//go:embed index.html
var indexHTML []byte

// IndexHTML returns a reader over the embedded page.
func IndexHTML() io.Reader {
	return bytes.NewReader(indexHTML)
}
