package dbus

import (
	"encoding/json"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/averen/notifyd/internal/notification"
)

// ControlClient is the notifyctl side of the control interface.
type ControlClient struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewControlClient connects to the session bus and binds the control
// object exported by a running daemon.
func NewControlClient() (*ControlClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &ControlClient{
		conn: conn,
		obj:  conn.Object(BusName, ControlPath),
	}, nil
}

func (c *ControlClient) call(method string, args ...interface{}) *dbus.Call {
	return c.obj.Call(ControlInterface+"."+method, 0, args...)
}

// PauseOn suspends queue management in the daemon.
func (c *ControlClient) PauseOn() error {
	return c.call("PauseOn").Err
}

// PauseOff resumes queue management in the daemon.
func (c *ControlClient) PauseOff() error {
	return c.call("PauseOff").Err
}

// PauseStatus reports whether the daemon's queue management is paused.
func (c *ControlClient) PauseStatus() (bool, error) {
	var paused bool
	if err := c.call("PauseStatus").Store(&paused); err != nil {
		return false, err
	}
	return paused, nil
}

// CloseAll closes every waiting and displayed notification.
func (c *ControlClient) CloseAll() error {
	return c.call("CloseAll").Err
}

// HistoryPop recalls the most recently archived notification.
func (c *ControlClient) HistoryPop() error {
	return c.call("HistoryPop").Err
}

// SetDisplayedLimit sets the maximum number of displayed notifications.
func (c *ControlClient) SetDisplayedLimit(limit uint32) error {
	return c.call("SetDisplayedLimit", limit).Err
}

// Counts returns the waiting, displayed, and history queue lengths.
func (c *ControlClient) Counts() (waiting, displayed, history uint32, err error) {
	err = c.call("Counts").Store(&waiting, &displayed, &history)
	return waiting, displayed, history, err
}

// Displayed returns the daemon's displayed queue in promotion order.
func (c *ControlClient) Displayed() ([]notification.Notification, error) {
	return c.records("DisplayedJSON")
}

// History returns the daemon's history queue, most recent first.
func (c *ControlClient) History() ([]notification.Notification, error) {
	return c.records("HistoryJSON")
}

func (c *ControlClient) records(method string) ([]notification.Notification, error) {
	var raw string
	if err := c.call(method).Store(&raw); err != nil {
		return nil, err
	}
	var records []notification.Notification
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s reply: %w", method, err)
	}
	return records, nil
}
