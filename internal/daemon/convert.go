package daemon

import (
	"time"

	"github.com/averen/notifyd/internal/config"
	ndbus "github.com/averen/notifyd/internal/dbus"
	"github.com/averen/notifyd/internal/notification"
)

// RecordFromDBus converts an inbound Notify call into a queue record,
// resolving the wire timeout against the configured per-urgency
// defaults: -1 means server default, 0 means never expire, anything else
// is milliseconds.
func RecordFromDBus(cfg *config.Config, raw *ndbus.RawNotification) *notification.Notification {
	n := notification.New()
	n.ID = raw.ReplacesID
	n.AppName = raw.AppName
	n.Summary = raw.Summary
	n.Body = raw.Body
	n.Icon = raw.AppIcon
	n.Category = raw.Category()
	n.StackTag = raw.StackTag()
	n.Transient = raw.Transient()
	n.Actions = raw.ParsedActions()
	n.Progress = raw.Progress()
	n.SetUrgency(raw.Urgency())

	switch {
	case raw.ExpireTimeout < 0:
		n.Timeout = cfg.TimeoutForUrgency(n.Urgency)
	case raw.ExpireTimeout == 0:
		n.Timeout = 0 // never expire
	default:
		n.Timeout = time.Duration(raw.ExpireTimeout) * time.Millisecond
	}

	return n
}
