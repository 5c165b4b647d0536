package multiplayer

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dodgeball/internal/link"
)

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	WaitTimeout   time.Duration // How long a session may wait for an opponent
	CleanupPeriod time.Duration // How often to expire waiting sessions
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		WaitTimeout:   5 * time.Minute,
		CleanupPeriod: 30 * time.Second,
	}
}

type waiter struct {
	session SessionHandle
	since   time.Time
}

type duel struct {
	id    MatchID
	seats [2]SessionID
	ends  [2]*link.PipeEnd
}

// Coordinator queues sessions and pairs them first come, first served.
// All state changes happen on its message goroutine.
type Coordinator struct {
	config   CoordinatorConfig
	sessions *SessionRegistry
	logger   *log.Logger

	mu          sync.RWMutex
	waiting     []waiter
	duels       map[MatchID]*duel
	sessionDuel map[SessionID]MatchID

	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
	nowFunc  func() time.Time
}

// NewCoordinator creates a new coordinator. A nil logger discards output.
func NewCoordinator(cfg CoordinatorConfig, sessions *SessionRegistry, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{
		config:      cfg,
		sessions:    sessions,
		logger:      logger,
		duels:       make(map[MatchID]*duel),
		sessionDuel: make(map[SessionID]MatchID),
		msgChan:     make(chan CoordinatorMessage, 256),
		done:        make(chan struct{}),
		nowFunc:     time.Now,
	}
}

// Start begins the coordinator's background processing.
func (c *Coordinator) Start() {
	go c.processMessages()
}

// Stop shuts down the coordinator. Safe to call multiple times.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// Send sends a message to the coordinator for async processing.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

// Waiting returns the number of queued sessions.
func (c *Coordinator) Waiting() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.waiting)
}

// ActiveDuels returns the number of duels with at least one session left.
func (c *Coordinator) ActiveDuels() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.duels)
}

func (c *Coordinator) processMessages() {
	var tick <-chan time.Time
	if c.config.CleanupPeriod > 0 {
		ticker := time.NewTicker(c.config.CleanupPeriod)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-tick:
			c.expireWaiting()
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case JoinQueueMsg:
		c.handleJoin(m)
	case LeaveMsg:
		c.handleLeave(m)
	}
}

func (c *Coordinator) handleJoin(msg JoinQueueMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if _, busy := c.sessionDuel[msg.SessionID]; busy || c.isWaiting(msg.SessionID) {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already queued or playing"})
		return
	}

	if len(c.waiting) == 0 {
		c.waiting = append(c.waiting, waiter{session: session, since: c.nowFunc()})
		c.mu.Unlock()
		session.Send(WaitingEvent{Queued: 1})
		c.logger.Info("session waiting", "session", msg.SessionID)
		return
	}

	host := c.waiting[0].session
	c.waiting = c.waiting[1:]

	a, b := link.Pipe()
	d := &duel{
		id:    NewMatchID(),
		seats: [2]SessionID{host.ID(), session.ID()},
		ends:  [2]*link.PipeEnd{a, b},
	}
	c.duels[d.id] = d
	c.sessionDuel[host.ID()] = d.id
	c.sessionDuel[session.ID()] = d.id
	c.mu.Unlock()

	host.Send(PairedEvent{Pairing: Pairing{MatchID: d.id, Self: host.ID(), Opponent: session.ID(), Seat: 1, Link: a}})
	session.Send(PairedEvent{Pairing: Pairing{MatchID: d.id, Self: session.ID(), Opponent: host.ID(), Seat: 2, Link: b}})
	c.logger.Info("duel paired", "match", d.id, "host", host.ID(), "joiner", session.ID())
}

func (c *Coordinator) handleLeave(msg LeaveMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, w := range c.waiting {
		if w.session.ID() == msg.SessionID {
			c.waiting = append(c.waiting[:i], c.waiting[i+1:]...)
			c.logger.Info("session left queue", "session", msg.SessionID)
			return
		}
	}

	id, ok := c.sessionDuel[msg.SessionID]
	if !ok {
		return
	}
	delete(c.sessionDuel, msg.SessionID)

	d := c.duels[id]
	for seat, sid := range d.seats {
		if sid == msg.SessionID {
			_ = d.ends[seat].Close()
			continue
		}
		if _, still := c.sessionDuel[sid]; !still {
			continue
		}
		if peer, ok := c.sessions.Get(sid); ok {
			peer.Send(OpponentLeftEvent{MatchID: id})
		}
	}

	if _, a := c.sessionDuel[d.seats[0]]; !a {
		if _, b := c.sessionDuel[d.seats[1]]; !b {
			delete(c.duels, id)
		}
	}
	c.logger.Info("session left duel", "session", msg.SessionID, "match", id)
}

func (c *Coordinator) expireWaiting() {
	if c.config.WaitTimeout <= 0 {
		return
	}
	now := c.nowFunc()

	c.mu.Lock()
	kept := c.waiting[:0]
	var expired []SessionHandle
	for _, w := range c.waiting {
		if now.Sub(w.since) > c.config.WaitTimeout {
			expired = append(expired, w.session)
			continue
		}
		kept = append(kept, w)
	}
	c.waiting = kept
	c.mu.Unlock()

	for _, s := range expired {
		s.Send(WaitExpiredEvent{})
		c.logger.Info("wait expired", "session", s.ID())
	}
}

// isWaiting must be called with c.mu held.
func (c *Coordinator) isWaiting(id SessionID) bool {
	for _, w := range c.waiting {
		if w.session.ID() == id {
			return true
		}
	}
	return false
}
