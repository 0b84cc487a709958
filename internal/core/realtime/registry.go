package realtime

import (
	"sync"
)

// GroupRegistry maps groups to the subscribers currently connected to them.
//
// Each group has its own lock; there is no registry-wide lock. A group whose
// last member leaves is retired and removed from the map, and a Join that
// races with the removal retries against a fresh set.
type GroupRegistry struct {
	groups sync.Map // Group -> *memberSet
}

type memberSet struct {
	mu      sync.RWMutex
	members map[string]Subscriber
	retired bool
}

// NewGroupRegistry returns an empty registry.
func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{}
}

// Join adds sub to group. Joining twice has no further effect.
func (r *GroupRegistry) Join(group Group, sub Subscriber) {
	for {
		set := r.load(group)
		if set == nil {
			v, _ := r.groups.LoadOrStore(group, &memberSet{members: make(map[string]Subscriber)})
			set = v.(*memberSet)
		}

		set.mu.Lock()
		if set.retired {
			set.mu.Unlock()
			continue
		}
		set.members[sub.ID()] = sub
		set.mu.Unlock()
		return
	}
}

// Leave removes sub from group. Leaving a group the handle is not in is a no-op.
func (r *GroupRegistry) Leave(group Group, sub Subscriber) {
	set := r.load(group)
	if set == nil {
		return
	}

	set.mu.Lock()
	defer set.mu.Unlock()

	delete(set.members, sub.ID())
	r.retireIfEmpty(group, set)
}

// Members returns a snapshot of group. Unknown groups yield an empty slice.
func (r *GroupRegistry) Members(group Group) []Subscriber {
	set := r.load(group)
	if set == nil {
		return []Subscriber{}
	}

	set.mu.RLock()
	defer set.mu.RUnlock()

	out := make([]Subscriber, 0, len(set.members))
	for _, sub := range set.members {
		out = append(out, sub)
	}
	return out
}

// Contains reports whether sub is currently a member of group.
func (r *GroupRegistry) Contains(group Group, sub Subscriber) bool {
	set := r.load(group)
	if set == nil {
		return false
	}

	set.mu.RLock()
	defer set.mu.RUnlock()
	_, ok := set.members[sub.ID()]
	return ok
}

// Sweep drops members whose connection is already closed and returns how
// many were removed. It backs up the per-connection cleanup.
func (r *GroupRegistry) Sweep() int {
	removed := 0
	r.groups.Range(func(key, value any) bool {
		set := value.(*memberSet)

		set.mu.Lock()
		for id, sub := range set.members {
			if sub.Closed() {
				delete(set.members, id)
				removed++
			}
		}
		r.retireIfEmpty(key.(Group), set)
		set.mu.Unlock()
		return true
	})
	return removed
}

// Stats returns the member count of every live group.
func (r *GroupRegistry) Stats() map[Group]int {
	stats := make(map[Group]int)
	r.groups.Range(func(key, value any) bool {
		set := value.(*memberSet)

		set.mu.RLock()
		if n := len(set.members); n > 0 {
			stats[key.(Group)] = n
		}
		set.mu.RUnlock()
		return true
	})
	return stats
}

func (r *GroupRegistry) load(group Group) *memberSet {
	v, ok := r.groups.Load(group)
	if !ok {
		return nil
	}
	return v.(*memberSet)
}

// retireIfEmpty must be called with set.mu held.
func (r *GroupRegistry) retireIfEmpty(group Group, set *memberSet) {
	if len(set.members) > 0 || set.retired {
		return
	}
	set.retired = true
	r.groups.CompareAndDelete(group, set)
}
