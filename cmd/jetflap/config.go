package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jetflap/internal/config"
	"github.com/vovakirdan/jetflap/internal/games/flappy"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the embedded default config as YAML.

Save it to ~/.jetflap/configs/flappy.yaml, or pass it with --config, to tune
gravity, jet strength, wall spacing, and difficulty scaling.

Examples:
  jetflap config > my-flappy.yaml
  jetflap play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	data := config.GetDefaultYAML(flappy.ID)
	if data == nil {
		fmt.Fprintln(os.Stderr, "Error: no default config embedded")
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
