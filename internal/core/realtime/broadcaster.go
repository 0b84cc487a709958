package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Deliverer pushes one event to every subscriber of a group. The local
// Broadcaster implements it, as do the cross-instance relays.
type Deliverer interface {
	Deliver(ctx context.Context, group Group, event string, payload json.RawMessage) error
}

// Broadcaster fans events out to the members of a group.
//
// Delivery is at-most-once. A subscriber whose queue is full misses the event;
// a closed subscriber is removed from the group.
type Broadcaster struct {
	registry *GroupRegistry
	logger   *slog.Logger
}

var _ Deliverer = (*Broadcaster)(nil)

func NewBroadcaster(registry *GroupRegistry, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		logger:   logger.With("component", "broadcaster"),
	}
}

// Deliver encodes the frame once and offers it to each member. It only fails
// when the frame cannot be encoded.
func (b *Broadcaster) Deliver(ctx context.Context, group Group, event string, payload json.RawMessage) error {
	frame, err := EncodeMessage(event, payload)
	if err != nil {
		return err
	}

	members := b.registry.Members(group)
	for _, sub := range members {
		err := sub.Send(frame)
		switch {
		case err == nil:
		case errors.Is(err, ErrSubscriberClosed):
			b.registry.Leave(group, sub)
		case errors.Is(err, ErrSubscriberLagging):
			b.logger.WarnContext(ctx, "dropping event for slow subscriber",
				"group", group, "event", event, "subscriber", sub.ID())
		default:
			b.logger.ErrorContext(ctx, "failed to send event",
				"group", group, "event", event, "subscriber", sub.ID(), "error", err)
		}
	}

	b.logger.DebugContext(ctx, "event delivered", "group", group, "event", event, "members", len(members))
	return nil
}
