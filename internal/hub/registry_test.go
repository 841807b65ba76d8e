package hub

import (
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func newTestSubscriber() *Subscriber {
	return NewSubscriber(&fakeConn{}, clockwork.NewRealClock())
}

func TestRegistry_AddAndRemove(t *testing.T) {
	r := NewRegistry()
	a := newTestSubscriber()
	b := newTestSubscriber()

	r.Add(a)
	r.Add(b)
	assert.Equal(t, 2, r.Len())

	r.Remove(a)
	assert.Equal(t, 1, r.Len())

	r.Remove(b)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_RemoveAbsentIsNoOp(t *testing.T) {
	r := NewRegistry()
	a := newTestSubscriber()
	b := newTestSubscriber()
	r.Add(a)

	r.Remove(b) // never added
	assert.Equal(t, 1, r.Len())

	r.Remove(a)
	r.Remove(a) // double remove
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ReAddIsNoOp(t *testing.T) {
	r := NewRegistry()
	a := newTestSubscriber()

	r.Add(a)
	r.Add(a)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SnapshotIsPointInTime(t *testing.T) {
	r := NewRegistry()
	a := newTestSubscriber()
	r.Add(a)

	snap := r.Snapshot()
	assert.Len(t, snap, 1)

	// Mutations after the snapshot must not show up in it.
	r.Add(newTestSubscriber())
	r.Remove(a)
	assert.Len(t, snap, 1)
	assert.Same(t, a, snap[0])
}

func TestRegistry_RemoveAllBatch(t *testing.T) {
	r := NewRegistry()
	a := newTestSubscriber()
	b := newTestSubscriber()
	c := newTestSubscriber()
	r.Add(a)
	r.Add(b)
	r.Add(c)

	r.RemoveAll([]*Subscriber{a, c})
	assert.Equal(t, 1, r.Len())

	snap := r.Snapshot()
	assert.Same(t, b, snap[0])

	r.RemoveAll(nil) // empty batch
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ConcurrentAddRemove(t *testing.T) {
	r := NewRegistry()

	const n = 64
	subs := make([]*Subscriber, n)
	for i := range subs {
		subs[i] = newTestSubscriber()
	}

	var wg sync.WaitGroup
	for _, s := range subs {
		wg.Add(1)
		go func(s *Subscriber) {
			defer wg.Done()
			r.Add(s)
		}(s)
	}
	wg.Wait()
	assert.Equal(t, n, r.Len())

	for _, s := range subs[:n/2] {
		wg.Add(1)
		go func(s *Subscriber) {
			defer wg.Done()
			r.Remove(s)
		}(s)
	}
	// Snapshots may run concurrently with removals.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, n/2, r.Len())
}

func TestRegistry_CloseAll(t *testing.T) {
	r := NewRegistry()
	conns := []*fakeConn{{}, {}, {}}
	for _, c := range conns {
		r.Add(NewSubscriber(c, clockwork.NewRealClock()))
	}

	r.CloseAll()

	assert.Equal(t, 0, r.Len())
	for _, c := range conns {
		assert.True(t, c.isClosed())
	}
}
