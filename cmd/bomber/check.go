package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/surface"
)

var (
	flagDocument string
	flagHost     string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Resolve the required surfaces of a page",
	Long: `Resolve the stats region, the matchfield canvas with its 2D context and
the ready button against a host document. Exits with status 1 when any of
them is missing.

Hosts:
  frontend - the bundled browser page (default)
  terminal - the document the lobby runs on

Examples:
  bomber check
  bomber check --host terminal
  bomber check --document ./public/index.html`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&flagDocument, "document", "", "Path to an HTML page to check instead of a host")
	checkCmd.Flags().StringVar(&flagHost, "host", "frontend", "Registered host to check")
}

func runCheck(_ *cobra.Command, _ []string) {
	logger := newLogger()
	cfg := loadConfig(logger)
	ids := surfaceIDs(cfg)

	doc, name, err := checkDocument(ids)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !registry.Exists(flagHost) {
			fmt.Fprintln(os.Stderr, "Available hosts:")
			for _, h := range registry.List() {
				fmt.Fprintf(os.Stderr, "  %-10s %s\n", h.ID, h.Title)
			}
		}
		os.Exit(1)
	}

	handles, err := surface.Resolve(doc, ids)
	if err != nil {
		var hre *surface.HandleResolutionError
		if errors.As(err, &hre) {
			logger.Error("surface missing", "document", name, "id", hre.ID, "error", hre.Err)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w, h := handles.Matchfield.Size()
	fmt.Printf("%s: all surfaces resolved\n", name)
	fmt.Println()
	fmt.Printf("  #%-14s <%s>\n", ids.Stats, handles.Stats.Tag())
	fmt.Printf("  #%-14s <%s> %dx%d\n", ids.Matchfield, handles.Matchfield.Tag(), w, h)
	fmt.Printf("  #%-14s <%s> %q\n", ids.ReadyButton, handles.Ready.Tag(), handles.Ready.Text())

	if canvas := cfg.Field.CanvasSize; flagDocument != "" || flagHost == "frontend" {
		if w != canvas || h != canvas {
			logger.Warn("canvas size differs from configured canvas size",
				"width", w, "height", h, "canvas_size", canvas)
		}
	}
}

// checkDocument loads the page given by --document, or builds the --host document.
func checkDocument(ids surface.IDs) (*surface.Document, string, error) {
	if flagDocument == "" {
		doc, err := registry.Create(flagHost, ids)
		return doc, flagHost, err
	}

	f, err := os.Open(flagDocument)
	if err != nil {
		return nil, flagDocument, err
	}
	defer f.Close()

	doc, err := surface.ParseHTML(f)
	if err != nil {
		return nil, flagDocument, fmt.Errorf("parse %s: %w", flagDocument, err)
	}
	return doc, flagDocument, nil
}
