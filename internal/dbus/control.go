package dbus

import (
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// ControlInterface is the notifyctl control interface name.
	ControlInterface = "org.notifyd.Control"
	// ControlPath is the control object path.
	ControlPath = "/org/notifyd/Control"
)

// ControlBackend is implemented by the daemon engine. All calls are
// serialized through the engine's event loop.
type ControlBackend interface {
	PauseOn()
	PauseOff()
	Paused() bool
	CloseAll()
	HistoryPop()
	SetDisplayedLimit(limit uint32)
	Counts() (waiting, displayed, history uint32)
	DisplayedJSON() (string, error)
	HistoryJSON() (string, error)
}

// Control exposes daemon management to notifyctl over D-Bus.
type Control struct {
	backend ControlBackend
	logger  *slog.Logger
}

// NewControl creates the control object.
func NewControl(backend ControlBackend, logger *slog.Logger) *Control {
	if logger == nil {
		logger = slog.Default()
	}
	return &Control{backend: backend, logger: logger}
}

// Export exports the control object on an existing bus connection. The
// object shares the connection that owns the notification bus name.
func (c *Control) Export(conn *dbus.Conn) error {
	if conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}
	if err := conn.Export(c, ControlPath, ControlInterface); err != nil {
		return fmt.Errorf("failed to export control object: %w", err)
	}

	node := &introspect.Node{
		Name: ControlPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    ControlInterface,
				Methods: controlMethods(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ControlPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export control introspectable: %w", err)
	}

	c.logger.Info("control interface exported", "interface", ControlInterface, "path", ControlPath)
	return nil
}

// PauseOn suspends queue management.
func (c *Control) PauseOn() *dbus.Error {
	c.logger.Debug("PauseOn called")
	c.backend.PauseOn()
	return nil
}

// PauseOff resumes queue management.
func (c *Control) PauseOff() *dbus.Error {
	c.logger.Debug("PauseOff called")
	c.backend.PauseOff()
	return nil
}

// PauseStatus reports whether queue management is paused.
func (c *Control) PauseStatus() (bool, *dbus.Error) {
	return c.backend.Paused(), nil
}

// CloseAll closes every waiting and displayed notification.
func (c *Control) CloseAll() *dbus.Error {
	c.logger.Debug("CloseAll called")
	c.backend.CloseAll()
	return nil
}

// HistoryPop recalls the most recently archived notification.
func (c *Control) HistoryPop() *dbus.Error {
	c.logger.Debug("HistoryPop called")
	c.backend.HistoryPop()
	return nil
}

// SetDisplayedLimit sets the maximum number of displayed notifications.
func (c *Control) SetDisplayedLimit(limit uint32) *dbus.Error {
	c.logger.Debug("SetDisplayedLimit called", "limit", limit)
	c.backend.SetDisplayedLimit(limit)
	return nil
}

// Counts returns the waiting, displayed, and history queue lengths.
func (c *Control) Counts() (uint32, uint32, uint32, *dbus.Error) {
	w, d, h := c.backend.Counts()
	return w, d, h, nil
}

// DisplayedJSON returns the displayed queue as a JSON array.
func (c *Control) DisplayedJSON() (string, *dbus.Error) {
	s, err := c.backend.DisplayedJSON()
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return s, nil
}

// HistoryJSON returns the history queue as a JSON array, most recent
// first.
func (c *Control) HistoryJSON() (string, *dbus.Error) {
	s, err := c.backend.HistoryJSON()
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return s, nil
}

// controlMethods returns the D-Bus method introspection data.
func controlMethods() []introspect.Method {
	return []introspect.Method{
		{Name: "PauseOn"},
		{Name: "PauseOff"},
		{
			Name: "PauseStatus",
			Args: []introspect.Arg{
				{Name: "paused", Type: "b", Direction: "out"},
			},
		},
		{Name: "CloseAll"},
		{Name: "HistoryPop"},
		{
			Name: "SetDisplayedLimit",
			Args: []introspect.Arg{
				{Name: "limit", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "Counts",
			Args: []introspect.Arg{
				{Name: "waiting", Type: "u", Direction: "out"},
				{Name: "displayed", Type: "u", Direction: "out"},
				{Name: "history", Type: "u", Direction: "out"},
			},
		},
		{
			Name: "DisplayedJSON",
			Args: []introspect.Arg{
				{Name: "json", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "HistoryJSON",
			Args: []introspect.Arg{
				{Name: "json", Type: "s", Direction: "out"},
			},
		},
	}
}
