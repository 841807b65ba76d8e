// Package hub tracks live WebSocket subscribers and fans newly written
// readings out to them.
//
// Membership lives in a mutex-guarded Registry; the Dispatcher broadcasts by
// iterating a point-in-time snapshot outside the lock, so a slow or dead
// subscriber never blocks registration or delivery to the others. Dead
// subscribers are collected during the pass and removed in one batch after it.
package hub
