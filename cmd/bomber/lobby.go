package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bomber/internal/game"
	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	flagName    string
	flagUserID  uint64
	flagLogFile string
)

var lobbyCmd = &cobra.Command{
	Use:   "lobby",
	Short: "Run the local lobby",
	Long: `Open the lobby in the terminal: the matchfield, the stats panel with
your name and position, and the ready button. The session is saved to the
database when you quit.

Controls:
  W/A/S/D, arrows - Move
  Space           - Place bomb (once per cooldown)
  Enter/R         - Toggle ready
  ?               - Help
  Q/Ctrl+C        - Quit

Examples:
  bomber lobby --name alice
  bomber lobby --name bob --log-file /tmp/bomber.log --log-level debug`,
	Run: runLobby,
}

func init() {
	lobbyCmd.Flags().StringVar(&flagName, "name", "", "Player name (default: $USER)")
	lobbyCmd.Flags().Uint64Var(&flagUserID, "user-id", 1, "Player user id")
	lobbyCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write lobby logs to this file")
}

func runLobby(_ *cobra.Command, _ []string) {
	logger := newLogger()
	cfg := loadConfig(logger)

	name := flagName
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "player"
	}

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	// The TUI owns the terminal, so lobby logs go to a file or nowhere
	lobbyLogger := log.New(io.Discard)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		lobbyLogger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "lobby"})
		lobbyLogger.SetLevel(logger.GetLevel())
	}

	model, err := tui.NewLobbyModel(tui.LobbyOptions{
		Constants: cfg.Constants(),
		IDs:       surfaceIDs(cfg),
		User:      game.User{UserID: flagUserID, Name: name},
		Width:     width,
		Height:    height,
		Logger:    lobbyLogger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	final, runErr := tui.RunLobby(model, tea.WithAltScreen())
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running lobby: %v\n", runErr)
		os.Exit(1)
	}

	saveSession(logger, final.Session())
}

// saveSession stores the finished session. Storage problems are reported
// but do not fail the command.
func saveSession(logger *log.Logger, s *game.Session) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		return
	}
	defer store.Close()

	record := storage.RecordFromSession(s, time.Now())
	if _, err := store.SaveSession(record); err != nil {
		logger.Warn("could not save session", "session", s.ID, "error", err)
		return
	}

	logger.Info("session saved",
		"session", s.ID,
		"duration", record.Duration().Round(time.Second),
		"bombs", record.BombsPlaced,
		"messages", record.Messages,
	)
}
