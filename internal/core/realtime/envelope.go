package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidEnvelope is returned by DecodeEnvelope for malformed relay frames.
var ErrInvalidEnvelope = errors.New("invalid relay envelope")

// Envelope carries one event between application instances.
type Envelope struct {
	Origin  string          `json:"origin"`
	Group   Group           `json:"group"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// EncodeEnvelope renders an envelope for a relay channel.
func EncodeEnvelope(origin string, group Group, event string, payload json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(Envelope{Origin: origin, Group: group, Event: event, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode envelope %s/%s: %w", group, event, err)
	}
	return b, nil
}

// DecodeEnvelope parses and validates an envelope read from a relay channel.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	group, ok := ParseGroup(string(env.Group))
	if !ok {
		return Envelope{}, fmt.Errorf("%w: unknown group %q", ErrInvalidEnvelope, env.Group)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("%w: event is empty", ErrInvalidEnvelope)
	}
	env.Group = group
	return env, nil
}

// RelayInbox hands envelopes received from other instances to the local
// deliverer. Envelopes published by this instance are skipped, since the
// publishing relay already delivered them locally.
type RelayInbox struct {
	origin string
	local  Deliverer
	logger *slog.Logger
}

func NewRelayInbox(origin string, local Deliverer, logger *slog.Logger) *RelayInbox {
	return &RelayInbox{origin: origin, local: local, logger: logger}
}

// Accept delivers one raw envelope. Malformed envelopes are logged and dropped.
func (in *RelayInbox) Accept(ctx context.Context, data []byte) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		in.logger.WarnContext(ctx, "dropping relay envelope", "error", err)
		return
	}
	if env.Origin == in.origin {
		return
	}
	if err = in.local.Deliver(ctx, env.Group, env.Event, env.Payload); err != nil {
		in.logger.ErrorContext(ctx, "failed to deliver relayed event",
			"group", env.Group, "event", env.Event, "origin", env.Origin, "error", err)
	}
}
