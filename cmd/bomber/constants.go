package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagFormat string

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Print the constant set",
	Long: `Load the configuration (file, dotenv and BOMBER_* variables) and print
the constants every collaborator reads, plus the derived cell size.

Examples:
  bomber constants
  bomber constants --format yaml > configs/bomber.yaml
  BOMBER_FRAME_LIMIT=4 bomber constants`,
	Run: runConstants,
}

func init() {
	constantsCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or yaml")
}

func runConstants(_ *cobra.Command, _ []string) {
	logger := newLogger()
	cfg := loadConfig(logger)
	c := cfg.Constants()

	switch flagFormat {
	case "yaml":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))

	case "text":
		fmt.Println("Bomber constants")
		fmt.Println()
		fmt.Printf("  %-22s %d\n", "Animation frame limit", c.FrameLimit)
		fmt.Printf("  %-22s %d\n", "Sprite frames", c.SpriteFrames)
		fmt.Printf("  %-22s %d\n", "Field size", c.FieldSize)
		fmt.Printf("  %-22s %d\n", "Canvas size", c.CanvasSize)
		fmt.Printf("  %-22s %d\n", "Cell size", c.CellSize())
		fmt.Printf("  %-22s %d\n", "Step size", c.StepSize)
		fmt.Printf("  %-22s %dx%d\n", "Sprite", c.SpriteWidth, c.SpriteHeight)
		fmt.Printf("  %-22s %v\n", "Bomb cooldown", c.BombCooldown())
		fmt.Printf("  %-22s %d\n", "Bomb radius", c.BombRadius)
		fmt.Printf("  %-22s %v\n", "Bomb fuse", c.BombFuse())

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", flagFormat)
		os.Exit(1)
	}
}
