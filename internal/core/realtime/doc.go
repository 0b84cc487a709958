// Package realtime fans committed route and order mutations out to connected viewers.
//
// Data flow:
//
//	unit of work commit -> MutationHook.OnEntityCommitted
//	  -> Deliverer.Deliver(group, event, payload)      (Broadcaster or a relay)
//	  -> GroupRegistry.Members(group)
//	  -> Subscriber.Send(message)                      (one Outbox per connection)
//
// Groups are "dashboard" for all route activity and "route.<id>" for one
// route and its orders. Every message on the wire has the shape
//
//	{"event": "<type>", "payload": <entity JSON or {"id": n}>}
//
// Delivery is best effort: a subscriber that is gone or lagging simply misses
// the event. Nothing is retried or stored.
package realtime
