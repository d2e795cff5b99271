package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jetflap/internal/core"
	"github.com/vovakirdan/jetflap/internal/games/flappy"
	"github.com/vovakirdan/jetflap/internal/platform/desktop"
	"github.com/vovakirdan/jetflap/internal/storage"
)

var flagMuted bool

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open an 800x480 window with sprites, sound, and a pixel font.

Controls:
  Space/Click/Touch - Fire the jetpack (also starts and restarts)
  Esc               - Close the window

Examples:
  jetflap window
  jetflap window --mute
  jetflap window --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&flagMuted, "mute", false, "Disable sound")
}

func runWindow(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	w, err := desktop.NewWindow(desktop.Options{
		Config:  flappy.LoadConfig(),
		Runtime: core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed},
		Store:   store,
		Player:  os.Getenv("USER"),
		Logger:  logger,
		Muted:   flagMuted,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error creating window: %v\n", err)
		os.Exit(1)
	}

	runErr := w.Run()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
