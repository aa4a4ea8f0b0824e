// Package daemon orchestrates notifyd. The Engine owns the queue engine
// and drives it from a single event loop: check timeouts, promote, hand
// the visible set to the renderer, then sleep until the next data change
// or the next command posted by a D-Bus handler.
package daemon
