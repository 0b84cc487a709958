// Package pgnotify fans realtime events out to every application instance
// through PostgreSQL LISTEN/NOTIFY.
package pgnotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"routetracker/internal/core/realtime"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MaxPayloadSize is the largest NOTIFY payload PostgreSQL accepts by default.
const MaxPayloadSize = 8000

// ErrPayloadTooLarge is returned when an envelope exceeds MaxPayloadSize.
var ErrPayloadTooLarge = errors.New("notification payload exceeds 8000 bytes")

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Relay delivers each event to local subscribers and publishes it with
// pg_notify. Run listens for notifications from the other instances.
type Relay struct {
	db      *gorm.DB
	dsn     string
	channel string
	origin  string
	local   realtime.Deliverer
	inbox   *realtime.RelayInbox
	logger  *slog.Logger
}

var _ realtime.Deliverer = (*Relay)(nil)

// New builds a relay that publishes through db and listens on a dedicated
// connection opened from dsn.
func New(db *gorm.DB, dsn, channel string, local realtime.Deliverer, logger *slog.Logger) *Relay {
	origin := uuid.NewString()
	logger = logger.With("component", "pgnotify_relay", "channel", channel, "origin", origin)

	return &Relay{
		db:      db,
		dsn:     dsn,
		channel: channel,
		origin:  origin,
		local:   local,
		inbox:   realtime.NewRelayInbox(origin, local, logger),
		logger:  logger,
	}
}

// Deliver hands the event to the local deliverer, then notifies the channel.
func (r *Relay) Deliver(ctx context.Context, group realtime.Group, event string, payload json.RawMessage) error {
	if err := r.local.Deliver(ctx, group, event, payload); err != nil {
		return err
	}

	data, err := realtime.EncodeEnvelope(r.origin, group, event, payload)
	if err != nil {
		return err
	}
	if len(data) > MaxPayloadSize {
		return fmt.Errorf("notify %s: %w", event, ErrPayloadTooLarge)
	}

	err = r.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", r.channel, string(data)).Error
	if err != nil {
		return fmt.Errorf("notify %s on %s: %w", event, r.channel, err)
	}
	return nil
}

// Run listens on the channel until ctx is cancelled. The listener reconnects
// on its own; notifications sent while it is disconnected are lost.
func (r *Relay) Run(ctx context.Context) error {
	listener := pq.NewListener(r.dsn, minReconnectInterval, maxReconnectInterval, r.onListenerEvent)
	defer func() {
		if err := listener.Close(); err != nil {
			r.logger.Warn("failed to close listener", "error", err)
		}
	}()

	if err := listener.Listen(r.channel); err != nil {
		return fmt.Errorf("listen on %s: %w", r.channel, err)
	}
	r.logger.InfoContext(ctx, "relay listening")

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-listener.Notify:
			if !ok {
				return nil
			}
			// nil after a reconnect
			if n == nil {
				continue
			}
			r.inbox.Accept(ctx, []byte(n.Extra))
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					r.logger.Warn("listener ping failed", "error", err)
				}
			}()
		}
	}
}

func (r *Relay) onListenerEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		r.logger.Debug("listener connected")
	case pq.ListenerEventDisconnected:
		r.logger.Warn("listener disconnected", "error", err)
	case pq.ListenerEventReconnected:
		r.logger.Info("listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		r.logger.Error("listener connection attempt failed", "error", err)
	}
}
