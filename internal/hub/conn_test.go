package hub

import (
	"sync"
	"time"
)

// fakeConn is an in-memory Conn for driving the hub without real sockets.
// gate, when non-nil, blocks WriteMessage until the channel is closed so tests
// can hold a broadcast pass mid-flight; entered is closed once the first write
// has started.
type fakeConn struct {
	mu        sync.Mutex
	frames    [][]byte
	closed    bool
	writeErr  error
	gate      chan struct{}
	entered   chan struct{}
	enterOnce sync.Once
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	if f.entered != nil {
		f.enterOnce.Do(func() { close(f.entered) })
	}
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.frames = append(f.frames, cp)
	return nil
}

func (f *fakeConn) SetWriteDeadline(t time.Time) error {
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) messages() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.frames))
	copy(out, f.frames)
	return out
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
