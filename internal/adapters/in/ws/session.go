package ws

import (
	"log/slog"
	"sync/atomic"
	"time"

	"routetracker/internal/core/realtime"

	"github.com/gorilla/websocket"
)

// State is the lifecycle stage of one connection.
//
//	CONNECTING ──> OPEN ──> CLOSED
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateOpen:
		return "OPEN"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// inbound frames are never interpreted
const maxInboundFrame = 4096

type session struct {
	conn     *websocket.Conn
	group    realtime.Group
	outbox   *realtime.Outbox
	registry *realtime.GroupRegistry
	cfg      Config
	logger   *slog.Logger

	state atomic.Int32
}

func newSession(
	group realtime.Group,
	registry *realtime.GroupRegistry,
	cfg Config,
	logger *slog.Logger,
) *session {
	outbox := realtime.NewOutbox(cfg.SendBuffer)
	return &session{
		group:    group,
		outbox:   outbox,
		registry: registry,
		cfg:      cfg,
		logger:   logger.With("group", group, "subscriber", outbox.ID()),
	}
}

// join adds the session to its group. Events delivered from now on are
// queued in the outbox until the connection is attached by run.
func (s *session) join() {
	s.registry.Join(s.group, s.outbox)
}

// abandon undoes join for a handshake that never completed.
func (s *session) abandon() {
	s.registry.Leave(s.group, s.outbox)
	s.outbox.Close()
	s.setState(StateClosed)
}

// run serves the joined session over conn and blocks until the connection is
// gone. The group is left on every exit path.
func (s *session) run(conn *websocket.Conn, stop <-chan struct{}) {
	s.conn = conn
	s.setState(StateOpen)

	readerDone := make(chan struct{})
	go s.readLoop(readerDone)

	reason := s.writeLoop(stop, readerDone)

	s.registry.Leave(s.group, s.outbox)
	s.outbox.Close()
	if err := s.conn.Close(); err != nil {
		s.logger.Debug("error closing connection", "error", err)
	}
	<-readerDone
	s.setState(StateClosed)
	s.logger.Info("subscriber disconnected", "reason", reason)
}

// readLoop discards everything the client sends and returns once the
// connection fails or the peer stops answering pings.
func (s *session) readLoop(done chan<- struct{}) {
	defer close(done)

	pongWait := s.cfg.PingInterval + s.cfg.WriteTimeout
	s.conn.SetReadLimit(maxInboundFrame)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (s *session) writeLoop(stop <-chan struct{}, readerDone <-chan struct{}) string {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case frame := <-s.outbox.Messages():
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.logger.Warn("failed to write event", "error", err)
				return "write error"
			}
		case <-ticker.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return "ping failed"
			}
		case <-readerDone:
			return "client closed"
		case <-stop:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.cfg.WriteTimeout))
			return "shutdown"
		}
	}
}

func (s *session) setState(next State) {
	prev := State(s.state.Swap(int32(next)))
	s.logger.Debug("subscriber state changed", "from", prev, "to", next)
}
