package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dodgeball/internal/platform/tui"
	"github.com/vovakirdan/tui-dodgeball/internal/storage"
)

var (
	flagLimit int
	flagNode  string
	flagPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished matches",
	Long: `Browse the match history ledger. Each finished match is recorded once
per node, with the role it ended in and both round durations.

Examples:
  dodgeball history
  dodgeball history --node alice
  dodgeball history --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", tui.DefaultHistoryLimit, "Number of matches to show")
	historyCmd.Flags().StringVar(&flagNode, "node", "", "Summarise one node's record")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive view")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	store, err := storage.Open(cfg.History.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := printHistory(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunHistory(store, flagNode, flagLimit, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHistory(store *storage.Store) error {
	records, err := store.RecentResults(flagLimit)
	if err != nil {
		return err
	}
	stats, err := store.NodeStats(flagNode)
	if err != nil {
		return err
	}

	fmt.Println("Match History")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dodgeball duel' to record the first one!")
		return nil
	}

	fmt.Printf("  %-16s  %-14s  %-7s  %8s  %8s  %s\n", "Date", "Node", "Role", "Round 1", "Round 2", "Result")
	fmt.Printf("  %-16s  %-14s  %-7s  %8s  %8s  %s\n", "----", "----", "----", "-------", "-------", "------")
	for _, r := range records {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-16s  %-14s  %-7s  %7.1fs  %7.1fs  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Node, r.Role,
			r.Seconds(r.RoundOne), r.Seconds(r.RoundTwo), result)
	}

	fmt.Println()
	who := "All nodes"
	if flagNode != "" {
		who = flagNode
	}
	fmt.Printf("%s: %d played, %d won\n", who, stats.Played, stats.Won)
	return nil
}
