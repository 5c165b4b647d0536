// dodgeball runs one node of the two-player attacker/defender dodgeball duel.
//
// Usage:
//
//	dodgeball play --listen :7000      - Wait for a peer node and play
//	dodgeball play --connect host:7000 - Connect to a waiting peer node
//	dodgeball duel                     - Two nodes side by side on one keyboard
//	dodgeball serve                    - Start SSH server that pairs remote players
//	dodgeball history                  - Browse finished matches
//	dodgeball config                   - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Config YAML (default search: ~/.dodgeball/configs, ./configs)
//	--difficulty <name>  - easy, normal or hard
//	--db <path>          - History database (default: ~/.dodgeball/history.db)
//	--log-file <path>    - Node event log ("" in the config disables it)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/logging"
	"github.com/vovakirdan/tui-dodgeball/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodgeball",
	Short: "Two-node attacker/defender dodgeball in your terminal",
	Long: `Dodgeball is a duel between two nodes joined by a one-byte link.
One player attacks by throwing balls, the other dodges them; after the
first round the roles swap. Whoever survives longer as defender wins.

Available commands:
  play     - Play against a peer node over TCP or WebSocket
  duel     - Play both nodes on one terminal
  serve    - Start SSH server for remote play
  history  - View finished matches
  config   - Print the effective configuration

Examples:
  dodgeball play --listen :7000
  dodgeball play --connect 192.168.1.20:7000
  dodgeball play --listen :7000 --transport ws
  dodgeball duel --difficulty hard
  dodgeball serve --ssh :2222
  dodgeball history`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Path to node event log (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Event log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(duelCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration file and applies the global flags.
func loadConfig() (config.DodgeballConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagDBPath != "" {
		cfg.History.DBPath = flagDBPath
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mustLoadConfig is loadConfig for commands that cannot go on without one.
func mustLoadConfig() config.DodgeballConfig {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStore opens the history ledger. Games still work without one.
func openStore(cfg config.DodgeballConfig) *storage.Store {
	store, err := storage.Open(cfg.History.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	return store
}

// openEventLog opens the node event log. Games still work without one.
func openEventLog(cfg config.DodgeballConfig) *logging.EventLog {
	events, err := logging.NewEventLog(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open event log: %v\n", err)
		return logging.Nop()
	}
	return events
}

// nodeName is the default name a node records in the history ledger.
func nodeName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "player"
}
