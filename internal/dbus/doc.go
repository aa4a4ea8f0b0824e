// Package dbus implements the org.freedesktop.Notifications D-Bus
// interface plus the org.notifyd.Control interface used by notifyctl.
// It is the transport boundary of the daemon: inbound Notify and
// CloseNotification calls are handed to the queue engine through
// handlers, and records closed by the engine are reported back with the
// NotificationClosed signal.
package dbus
