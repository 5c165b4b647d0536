package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
	"github.com/vovakirdan/tui-dodgeball/internal/logging"
	"github.com/vovakirdan/tui-dodgeball/internal/multiplayer"
	"github.com/vovakirdan/tui-dodgeball/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.dodgeball/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// WaitTimeout is how long a session may wait for an opponent.
	WaitTimeout time.Duration

	// Game configures every node the server runs, including the history
	// database and the event log file.
	Game config.DodgeballConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		WaitTimeout: multiplayer.DefaultCoordinatorConfig().WaitTimeout,
		Game:        config.DefaultDodgeballConfig(),
	}
}

// SSHServer serves dodgeball over SSH. Sessions queue in a lobby and are
// paired two at a time; each session runs its own node.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	events      *logging.EventLog
	logger      *log.Logger
	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := logging.Console("dodgeball-ssh")

	store, err := storage.Open(cfg.Game.History.DBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without history
	}

	events, err := logging.NewEventLog(cfg.Game.Log)
	if err != nil {
		logger.Warn("could not open event log", "error", err)
		events = logging.Nop()
	}

	coordCfg := multiplayer.DefaultCoordinatorConfig()
	if cfg.WaitTimeout > 0 {
		coordCfg.WaitTimeout = cfg.WaitTimeout
	}
	sessions := multiplayer.NewSessionRegistry()

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		events:      events,
		logger:      logger,
		sessions:    sessions,
		coordinator: multiplayer.NewCoordinator(coordCfg, sessions, logger.WithPrefix("lobby")),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeResources()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".dodgeball", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeResources()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeResources()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler queues each SSH session in the lobby and returns its model.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	id := multiplayer.NewSessionID(sshSession.User())
	handle := multiplayer.NewChannelSession(id, 16)
	s.sessions.Register(handle)
	s.coordinator.Send(multiplayer.JoinQueueMsg{SessionID: id})

	ctx := sshSession.Context()
	go s.releaseOnDone(ctx, handle)

	model := NewLobbyModel(LobbyOptions{
		Context: ctx,
		Session: handle,
		User:    sshSession.User(),
		Game:    s.config.Game,
		Store:   s.store,
		Logger:  s.events.With("user", sshSession.User()),
		Width:   pty.Window.Width,
		Height:  pty.Window.Height,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// releaseOnDone takes a session out of the lobby once its connection ends.
// The peer's node keeps running; it just stops receiving bytes.
func (s *SSHServer) releaseOnDone(ctx context.Context, handle *multiplayer.ChannelSession) {
	<-ctx.Done()
	s.coordinator.Send(multiplayer.LeaveMsg{SessionID: handle.ID()})
	s.sessions.Unregister(handle.ID())
	handle.Close()
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"waiting", s.coordinator.Waiting(),
			"duels", s.coordinator.ActiveDuels(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coordinator.Start()

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeResources()
	return err
}

func (s *SSHServer) closeResources() {
	s.coordinator.Stop()
	if s.store != nil {
		s.store.Close()
	}
	s.events.Close()
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
