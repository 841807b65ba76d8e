package hub

import (
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/firesense/firesense/internal/metrics"
)

// Dispatcher delivers one message to all current subscribers and reconciles
// delivery failures back into the registry.
type Dispatcher struct {
	registry *Registry
	clock    clockwork.Clock
}

// NewDispatcher creates a dispatcher bound to a registry.
func NewDispatcher(registry *Registry, clock clockwork.Clock) *Dispatcher {
	return &Dispatcher{registry: registry, clock: clock}
}

// Publish sends msg to every subscriber present in a point-in-time snapshot.
// One subscriber's failure never aborts delivery to the rest; subscribers
// classified dead are closed and removed in a single batch after the pass.
// Delivery order across subscribers is unspecified, and there is no retry.
func (d *Dispatcher) Publish(msg []byte) {
	start := d.clock.Now()
	subs := d.registry.Snapshot()

	var dead []*Subscriber
	delivered := 0
	for _, sub := range subs {
		if !sub.Alive() {
			dead = append(dead, sub)
			continue
		}
		if err := sub.Send(msg); err != nil {
			slog.Debug("dropping subscriber after failed delivery",
				"subscriber_id", sub.ID().String(), "error", err)
			dead = append(dead, sub)
			continue
		}
		delivered++
	}

	if len(dead) > 0 {
		for _, sub := range dead {
			sub.Close()
		}
		d.registry.RemoveAll(dead)
		metrics.HubDeadSubscribersEvicted.Add(float64(len(dead)))
	}

	metrics.HubBroadcastsTotal.Inc()
	metrics.HubMessagesDelivered.Add(float64(delivered))
	metrics.HubBroadcastDuration.Observe(d.clock.Since(start).Seconds())
}

// PublishAsync schedules a broadcast without blocking the caller. The write
// handler uses this so its HTTP response never waits on subscriber I/O.
func (d *Dispatcher) PublishAsync(msg []byte) {
	go d.Publish(msg)
}
