package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// MutationHook translates committed mutations into group events.
//
//	order  -> route.<route_id>  orders.<kind>
//	route  -> route.<id>        route.<kind>
//	       -> dashboard         routes.<kind>
//
// Failures are logged and never reach the committing caller.
type MutationHook struct {
	deliverer Deliverer
	logger    *slog.Logger
}

func NewMutationHook(deliverer Deliverer, logger *slog.Logger) *MutationHook {
	return &MutationHook{
		deliverer: deliverer,
		logger:    logger.With("component", "mutation_hook"),
	}
}

type target struct {
	group Group
	event string
}

// OnEntityCommitted is called by the unit of work once per mutation, after
// the transaction has committed.
func (h *MutationHook) OnEntityCommitted(ctx context.Context, m Mutation) {
	// the request may be gone by now; the event still has to go out
	ctx = context.WithoutCancel(ctx)

	if err := m.Validate(); err != nil {
		h.logger.ErrorContext(ctx, "skipping invalid mutation", "mutation", m.Key(), "error", err)
		return
	}

	payload, err := encodePayload(m)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encode mutation payload", "mutation", m.Key(), "error", err)
		return
	}

	for _, t := range targets(m) {
		if err := h.deliverer.Deliver(ctx, t.group, t.event, payload); err != nil {
			h.logger.ErrorContext(ctx, "failed to deliver event",
				"group", t.group, "event", t.event, "mutation", m.Key(), "error", err)
		}
	}
}

func targets(m Mutation) []target {
	action := string(m.Kind)
	switch m.Entity {
	case EntityOrder:
		return []target{{group: RouteGroup(m.RouteID), event: "orders." + action}}
	case EntityRoute:
		return []target{
			{group: RouteGroup(m.ID), event: "route." + action},
			{group: Dashboard, event: "routes." + action},
		}
	default:
		return nil
	}
}

func encodePayload(m Mutation) (json.RawMessage, error) {
	var v any = m.Snapshot
	if m.Kind == MutationDeleted {
		v = deletedPayload{ID: m.ID.Int64()}
	}
	if v == nil {
		return nil, fmt.Errorf("%s has no snapshot", m.Key())
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
