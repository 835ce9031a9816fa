package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	flagLimit  int
	flagPlain  bool
	flagPlayer uint64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished sessions",
	Long: `List the most recent lobby sessions stored in the database.

Examples:
  bomber history
  bomber history --limit 5 --plain
  bomber history --player 1`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive view")
	historyCmd.Flags().Uint64Var(&flagPlayer, "player", 0, "Print totals for this user id")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlayer != 0 {
		printTotals(store, flagPlayer)
		return
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if flagPlain || !interactive {
		printHistory(store)
		return
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	if err := tui.RunHistory(store, flagLimit, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running history: %v\n", err)
		os.Exit(1)
	}
}

func printHistory(store *storage.Store) {
	records, err := store.RecentSessions(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Session history")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'bomber lobby' to play one!")
		return
	}

	fmt.Printf("  %-12s  %-12s  %-8s  %-10s  %-6s  %s\n", "Ended", "Player", "Time", "Pos", "Bombs", "Msgs")
	fmt.Printf("  %-12s  %-12s  %-8s  %-10s  %-6s  %s\n", "-----", "------", "----", "---", "-----", "----")
	for _, row := range tui.HistoryRows(records) {
		fmt.Printf("  %-12s  %-12s  %-8s  %-10s  %-6s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}
}

func printTotals(store *storage.Store, userID uint64) {
	totals, err := store.PlayerTotals(userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving totals: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Player %d\n", userID)
	fmt.Println()
	if totals.Sessions == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}
	fmt.Printf("  %-16s %d\n", "Sessions", totals.Sessions)
	fmt.Printf("  %-16s %d\n", "Bombs placed", totals.BombsPlaced)
	fmt.Printf("  %-16s %d\n", "Bombs rejected", totals.BombsRejected)
	fmt.Printf("  %-16s %d\n", "Messages", totals.Messages)
	fmt.Printf("  %-16s %v\n", "Play time", totals.PlayTime)
	fmt.Printf("  %-16s %s\n", "Last played", totals.LastPlayed.Format("2006-01-02 15:04"))
}
