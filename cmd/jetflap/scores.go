package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jetflap/internal/games/flappy"
	"github.com/vovakirdan/jetflap/internal/platform/tui"
	"github.com/vovakirdan/jetflap/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagAll         bool
	flagClear       bool
	flagRun         string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores.

Examples:
  jetflap scores
  jetflap scores --limit 25
  jetflap scores --interactive
  jetflap scores --all
  jetflap scores --run 6f1c0a9e-...
  jetflap scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show every recorded run")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().StringVar(&flagRun, "run", "", "Show a single run by its ID")
	scoresCmd.MarkFlagsMutuallyExclusive("interactive", "all", "clear", "run")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, os.Getenv("USER"), width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch {
	case flagClear:
		if err := store.ClearScores(flappy.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All Jet Flap scores deleted.")
		return
	case flagRun != "":
		printRun(store, flagRun)
		return
	}

	var scores []storage.ScoreEntry
	if flagAll {
		scores, err = store.AllScores(flappy.ID)
	} else {
		scores, err = store.TopScores(flappy.ID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Jet Flap")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'jetflap play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-16s  %s\n", "Rank", "Player", "Score", "Walls", "Date", "Run")
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-16s  %s\n", "----", "------", "-----", "-----", "----", "---")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-8s  %-6d  %-16s  %s\n",
			i+1, entry.Player, flappy.FormatScore(entry.Score), entry.Walls, dateStr, entry.RunID)
	}

	fmt.Println()
	if highScore, err := store.HighScore(flappy.ID); err == nil {
		fmt.Printf("Best: %s\n", flappy.FormatScore(highScore))
	}
	if stats, err := store.GetGameStats(flappy.ID); err == nil {
		fmt.Printf("Runs: %d  Players: %d  Walls passed: %d\n",
			stats.GamesCount, stats.Players, stats.TotalWalls)
	}
}

// printRun shows one run looked up by its ID.
func printRun(store *storage.Store, runID string) {
	entry, err := store.ScoreByRun(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if entry == nil {
		fmt.Fprintf(os.Stderr, "No run with ID %s\n", runID)
		os.Exit(1)
	}

	fmt.Printf("Run %s\n\n", entry.RunID)
	fmt.Printf("  Player:   %s\n", entry.Player)
	fmt.Printf("  Score:    %s\n", flappy.FormatScore(entry.Score))
	fmt.Printf("  Walls:    %d\n", entry.Walls)
	fmt.Printf("  Duration: %s\n", entry.Duration.Round(time.Millisecond))
	fmt.Printf("  Date:     %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
}
