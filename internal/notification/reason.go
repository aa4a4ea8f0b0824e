package notification

// CloseReason is the reason a notification left the waiting or displayed
// queue. Values 1-4 match the freedesktop NotificationClosed signal.
type CloseReason uint32

const (
	// ReasonExpired indicates the notification timed out.
	ReasonExpired CloseReason = 1
	// ReasonDismissed indicates the user dismissed the notification.
	ReasonDismissed CloseReason = 2
	// ReasonClosed indicates a CloseNotification request closed it.
	ReasonClosed CloseReason = 3
	// ReasonUndefined is reserved/undefined per the spec.
	ReasonUndefined CloseReason = 4
	// ReasonReplaced indicates the record was replaced by a newer one.
	// Not part of the wire protocol; mapped to ReasonUndefined there.
	ReasonReplaced CloseReason = 5
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonDismissed:
		return "dismissed"
	case ReasonClosed:
		return "closed"
	case ReasonUndefined:
		return "undefined"
	case ReasonReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Wire returns the value to put on the NotificationClosed signal.
// Reasons outside the protocol's 1-4 range collapse to undefined.
func (r CloseReason) Wire() uint32 {
	if r < ReasonExpired || r > ReasonUndefined {
		return uint32(ReasonUndefined)
	}
	return uint32(r)
}
