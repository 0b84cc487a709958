// Package redisrelay fans realtime events out to every application instance
// through a Redis pub/sub channel.
package redisrelay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"routetracker/internal/core/realtime"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Relay delivers each event to local subscribers and publishes it for the
// other instances. Run consumes what the other instances publish.
type Relay struct {
	client  redis.UniversalClient
	channel string
	origin  string
	local   realtime.Deliverer
	inbox   *realtime.RelayInbox
	logger  *slog.Logger
}

var _ realtime.Deliverer = (*Relay)(nil)

// New creates a Relay that delivers to local and publishes on channel.
func New(client redis.UniversalClient, channel string, local realtime.Deliverer, logger *slog.Logger) *Relay {
	origin := uuid.NewString()
	logger = logger.With("component", "redis_relay", "channel", channel, "origin", origin)

	return &Relay{
		client:  client,
		channel: channel,
		origin:  origin,
		local:   local,
		inbox:   realtime.NewRelayInbox(origin, local, logger),
		logger:  logger,
	}
}

// Deliver hands the event to the local deliverer, then publishes it. Local
// subscribers are served even when Redis is unavailable.
func (r *Relay) Deliver(ctx context.Context, group realtime.Group, event string, payload json.RawMessage) error {
	if err := r.local.Deliver(ctx, group, event, payload); err != nil {
		return err
	}

	data, err := realtime.EncodeEnvelope(r.origin, group, event, payload)
	if err != nil {
		return err
	}
	if err = r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event, r.channel, err)
	}
	return nil
}

// Run subscribes to the channel and forwards envelopes from other instances
// until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer func() {
		if err := sub.Close(); err != nil {
			r.logger.Warn("failed to close subscription", "error", err)
		}
	}()

	// wait for the subscription to be confirmed
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", r.channel, err)
	}
	r.logger.InfoContext(ctx, "relay subscribed")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.inbox.Accept(ctx, []byte(msg.Payload))
		}
	}
}
