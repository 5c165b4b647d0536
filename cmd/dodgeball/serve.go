package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodgeball/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWaitTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dodgeball SSH server",
	Long: `Start an SSH server that pairs connecting players into duels.

Each SSH connection waits in the lobby until a second one arrives; the
two are then linked and each runs its own node on the server.
Finished matches go to the server's history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dodgeball/host_key

Examples:
  dodgeball serve                           # Listen on :23234 with auto-generated key
  dodgeball serve --ssh :2222               # Listen on port 2222
  dodgeball serve --host-key ./my_host_key  # Use specific host key
  dodgeball serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagWaitTimeout, "wait-timeout", 5, "Minutes a player may wait for an opponent")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		WaitTimeout: time.Duration(flagWaitTimeout) * time.Minute,
		Game:        mustLoadConfig(),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting dodgeball SSH server on %s\n", cfg.Address)
	fmt.Println("Two players connect to start a duel, e.g.: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
