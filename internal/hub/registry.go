package hub

import (
	"log/slog"
	"sync"

	"github.com/firesense/firesense/internal/metrics"
)

// Registry is the shared set of current subscribers, unique by identity.
// A single mutex guards membership; it is held only for set mutation and
// snapshot copies, never across a network send.
type Registry struct {
	mu      sync.Mutex
	members map[*Subscriber]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{members: make(map[*Subscriber]struct{})}
}

// Add inserts a subscriber. Identities are freshly minted per connection, so
// re-adding a present subscriber is a no-op.
func (r *Registry) Add(s *Subscriber) {
	r.mu.Lock()
	r.members[s] = struct{}{}
	size := len(r.members)
	r.mu.Unlock()

	metrics.HubSubscribers.Set(float64(size))
	slog.Debug("subscriber registered", "subscriber_id", s.ID().String(), "total", size)
}

// Remove deletes a subscriber if present. Removing an absent subscriber is a
// no-op, so a connection-closed event can race a failed-broadcast cleanup for
// the same subscriber.
func (r *Registry) Remove(s *Subscriber) {
	r.mu.Lock()
	_, present := r.members[s]
	delete(r.members, s)
	size := len(r.members)
	r.mu.Unlock()

	if present {
		metrics.HubSubscribers.Set(float64(size))
		slog.Debug("subscriber unregistered", "subscriber_id", s.ID().String(), "remaining", size)
	}
}

// RemoveAll deletes a batch of subscribers in one lock acquisition. The
// dispatcher uses it for its post-pass cleanup.
func (r *Registry) RemoveAll(subs []*Subscriber) {
	if len(subs) == 0 {
		return
	}

	r.mu.Lock()
	for _, s := range subs {
		delete(r.members, s)
	}
	size := len(r.members)
	r.mu.Unlock()

	metrics.HubSubscribers.Set(float64(size))
}

// Snapshot returns a point-in-time copy of the membership, suitable for
// iteration without holding the lock.
func (r *Registry) Snapshot() []*Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := make([]*Subscriber, 0, len(r.members))
	for s := range r.members {
		subs = append(subs, s)
	}
	return subs
}

// Len returns the current membership count.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// CloseAll closes every subscriber and empties the registry. Used during
// graceful shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	subs := make([]*Subscriber, 0, len(r.members))
	for s := range r.members {
		subs = append(subs, s)
	}
	r.members = make(map[*Subscriber]struct{})
	r.mu.Unlock()

	for _, s := range subs {
		s.Close()
	}
	metrics.HubSubscribers.Set(0)
	if len(subs) > 0 {
		slog.Info("closed all subscribers", "count", len(subs))
	}
}
