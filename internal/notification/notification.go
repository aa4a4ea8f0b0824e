// Package notification defines the record that crosses the boundaries
// between the D-Bus transport, the queue engine, and the rendering layer.
package notification

import (
	"fmt"
	"time"
)

// Urgency levels matching the freedesktop notification spec.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// UrgencyNames maps urgency levels to human-readable names.
var UrgencyNames = map[int]string{
	UrgencyLow:      "low",
	UrgencyNormal:   "normal",
	UrgencyCritical: "critical",
}

// Action represents a notification action with key and label.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Notification is a single notification record. Once handed to the queue
// engine via Insert or Close, the engine is the sole owner; callers keep
// only the ID as a stable handle.
type Notification struct {
	// ID is assigned by the queue engine. 0 means "not yet assigned";
	// a non-zero ID on insert requests replacement of that ID.
	ID uint32 `json:"id"`

	AppName  string `json:"app_name"`
	Summary  string `json:"summary"`
	Body     string `json:"body"`
	Icon     string `json:"icon,omitempty"`
	Category string `json:"category,omitempty"`

	Urgency     int    `json:"urgency"`
	UrgencyName string `json:"urgency_name"`

	// StackTag groups notifications that should replace each other
	// in place (x-dunst-stack-tag style).
	StackTag string `json:"stack_tag,omitempty"`

	// Timeout is the configured display duration. 0 means never expire.
	Timeout time.Duration `json:"timeout"`

	// Transient notifications use the shortened fullscreen timeout and
	// are not archived to history.
	Transient bool `json:"transient,omitempty"`

	// DupCount counts stacked duplicates collapsed into this record.
	DupCount int `json:"dup_count,omitempty"`

	// Timestamp is when the record was inserted or last updated by a
	// stacked duplicate.
	Timestamp time.Time `json:"timestamp"`

	// ShownAt is when the record was promoted to the displayed queue.
	// Zero while the record is still waiting.
	ShownAt time.Time `json:"shown_at,omitempty"`

	Actions  []Action `json:"actions,omitempty"`
	Progress int      `json:"progress,omitempty"` // 0-100, -1 = none
}

// New returns a record with sane defaults for fields the transport may
// leave unset.
func New() *Notification {
	return &Notification{
		Urgency:     UrgencyNormal,
		UrgencyName: UrgencyNames[UrgencyNormal],
		Progress:    -1,
	}
}

// SetUrgency sets the urgency level and its human-readable name.
func (n *Notification) SetUrgency(level int) {
	if level < UrgencyLow || level > UrgencyCritical {
		level = UrgencyNormal
	}
	n.Urgency = level
	n.UrgencyName = UrgencyNames[level]
}

// IsDuplicateOf reports whether two records are equivalent under the
// duplicate-stacking rule: same app, summary, body, icon, and urgency.
func (n *Notification) IsDuplicateOf(other *Notification) bool {
	return n.AppName == other.AppName &&
		n.Summary == other.Summary &&
		n.Body == other.Body &&
		n.Icon == other.Icon &&
		n.Urgency == other.Urgency
}

// Age returns how long the record has been visible. For records never
// promoted it falls back to the insertion timestamp.
func (n *Notification) Age(now time.Time) time.Duration {
	base := n.ShownAt
	if base.IsZero() {
		base = n.Timestamp
	}
	return now.Sub(base)
}

// DisplaySummary returns the summary with the stacked duplicate count
// appended, e.g. "Battery low (3)".
func (n *Notification) DisplaySummary() string {
	if n.DupCount > 0 {
		return fmt.Sprintf("%s (%d)", n.Summary, n.DupCount+1)
	}
	return n.Summary
}
