package hub

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

// sendTimeout bounds a single delivery attempt so one stalled client cannot
// stall the whole broadcast pass.
const sendTimeout = 5 * time.Second

// ErrSubscriberClosed is returned by Send once a subscriber has been closed.
var ErrSubscriberClosed = errors.New("subscriber closed")

// Conn is the slice of *websocket.Conn the hub needs. Narrowed so tests can
// inject failing transports.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Subscriber is one live push connection awaiting broadcast messages.
// Identity is reference equality plus a UUID for logging; lifetime is bounded
// by the connection's.
type Subscriber struct {
	id      uuid.UUID
	conn    Conn
	clock   clockwork.Clock
	writeMu sync.Mutex
	closed  atomic.Bool
}

// NewSubscriber wraps an open connection. Callers register it with the
// Registry only after the WebSocket handshake has succeeded.
func NewSubscriber(conn Conn, clock clockwork.Clock) *Subscriber {
	return &Subscriber{id: uuid.New(), conn: conn, clock: clock}
}

// ID returns the subscriber's connection identifier.
func (s *Subscriber) ID() uuid.UUID {
	return s.id
}

// Alive reports whether the underlying connection is still considered open.
func (s *Subscriber) Alive() bool {
	return !s.closed.Load()
}

// Send delivers one text message with a bounded write deadline. A failed or
// timed-out write marks the subscriber closed.
func (s *Subscriber) Send(msg []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return ErrSubscriberClosed
	}

	_ = s.conn.SetWriteDeadline(s.clock.Now().Add(sendTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		s.Close()
		return err
	}
	return nil
}

// Close tears down the connection. The read pump and the dispatcher cleanup
// can both call it for the same subscriber; only the first call closes the
// conn.
func (s *Subscriber) Close() {
	if s.closed.CompareAndSwap(false, true) {
		_ = s.conn.Close()
	}
}
