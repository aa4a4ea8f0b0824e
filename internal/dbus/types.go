package dbus

import (
	"github.com/godbus/dbus/v5"

	"github.com/averen/notifyd/internal/notification"
)

// RawNotification holds the raw parameters of an inbound
// org.freedesktop.Notifications.Notify call before conversion into a
// queue record.
type RawNotification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// ParsedActions converts the D-Bus action array to structured form.
// D-Bus actions are passed as alternating key/label pairs.
func (n *RawNotification) ParsedActions() []notification.Action {
	actions := make([]notification.Action, 0, len(n.Actions)/2)
	for i := 0; i+1 < len(n.Actions); i += 2 {
		actions = append(actions, notification.Action{
			Key:   n.Actions[i],
			Label: n.Actions[i+1],
		})
	}
	return actions
}

// Urgency extracts the urgency hint. Returns UrgencyNormal if not
// specified.
func (n *RawNotification) Urgency() int {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return notification.UrgencyNormal
}

// Category extracts the category hint, or "".
func (n *RawNotification) Category() string {
	return n.stringHint("category")
}

// Transient returns true if the transient hint is set.
func (n *RawNotification) Transient() bool {
	if v, ok := n.Hints["transient"]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// StackTag extracts the stack-tag hint used for in-place replacement of
// grouped notifications. Both the dunst-specific and the generic hint
// names are accepted.
func (n *RawNotification) StackTag() string {
	if s := n.stringHint("x-dunst-stack-tag"); s != "" {
		return s
	}
	return n.stringHint("stack-tag")
}

// Progress extracts the progress value hint (dunstify -h int:value:N).
// Returns -1 if not present.
func (n *RawNotification) Progress() int {
	if v, ok := n.Hints["value"]; ok {
		switch val := v.Value().(type) {
		case int32:
			return int(val)
		case uint32:
			return int(val)
		case int:
			return val
		case byte:
			return int(val)
		}
	}
	return -1
}

func (n *RawNotification) stringHint(name string) string {
	if v, ok := n.Hints[name]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// ServerCapabilities lists the capabilities advertised by notifyd.
var ServerCapabilities = []string{
	"actions",
	"body",
	"body-markup",
	"icon-static",
	"persistence",
}

// ServerInfo contains the values returned by GetServerInformation.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "notifyd",
		Vendor:      "notifyd",
		Version:     "0.0.1",
		SpecVersion: "1.2",
	}
}
