package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a node would run with, after the config file
search and the global flags are applied. The output is valid YAML and can
be saved as ~/.dodgeball/configs/dodgeball.yaml.

Examples:
  dodgeball config
  dodgeball config --difficulty hard > ~/.dodgeball/configs/dodgeball.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "# task periods in master ticks:")
	t := cfg.Timing
	for _, p := range []struct {
		name string
		rate int
	}{
		{"duration", t.DurationRate},
		{"input", t.InputRate},
		{"display", t.DisplayRate},
		{"ramp", t.RampRate},
		{"ball", t.BallRate},
		{"link", t.LinkRate},
	} {
		fmt.Fprintf(os.Stderr, "#   %-8s %d\n", p.name, t.Period(p.rate))
	}
	fmt.Fprintf(os.Stderr, "# presets: %v\n", config.Presets)
	fmt.Fprintln(os.Stderr, "# link transports:")
	for _, tr := range registry.List() {
		fmt.Fprintf(os.Stderr, "#   %-8s %s\n", tr.Name, tr.Title)
	}
}
