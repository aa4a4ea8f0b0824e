package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	n := New()
	assert.EqualValues(t, 0, n.ID)
	assert.Equal(t, UrgencyNormal, n.Urgency)
	assert.Equal(t, "normal", n.UrgencyName)
	assert.Equal(t, -1, n.Progress)
}

func TestSetUrgency(t *testing.T) {
	n := New()

	n.SetUrgency(UrgencyCritical)
	assert.Equal(t, UrgencyCritical, n.Urgency)
	assert.Equal(t, "critical", n.UrgencyName)

	n.SetUrgency(UrgencyLow)
	assert.Equal(t, "low", n.UrgencyName)

	// Out-of-range levels fall back to normal.
	n.SetUrgency(7)
	assert.Equal(t, UrgencyNormal, n.Urgency)
	assert.Equal(t, "normal", n.UrgencyName)

	n.SetUrgency(-1)
	assert.Equal(t, UrgencyNormal, n.Urgency)
}

func TestIsDuplicateOf(t *testing.T) {
	base := func() *Notification {
		n := New()
		n.AppName = "firefox"
		n.Summary = "Download finished"
		n.Body = "archive.tar.gz"
		n.Icon = "download"
		return n
	}

	a := base()
	assert.True(t, a.IsDuplicateOf(base()))

	b := base()
	b.Summary = "Download failed"
	assert.False(t, a.IsDuplicateOf(b))

	c := base()
	c.SetUrgency(UrgencyCritical)
	assert.False(t, a.IsDuplicateOf(c))

	// Timing and id fields do not affect equivalence.
	d := base()
	d.ID = 99
	d.Timestamp = time.Now()
	d.DupCount = 3
	assert.True(t, a.IsDuplicateOf(d))
}

func TestAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	n := New()
	n.Timestamp = now.Add(-10 * time.Second)
	assert.Equal(t, 10*time.Second, n.Age(now))

	// Once shown, age counts from the shown time.
	n.ShownAt = now.Add(-3 * time.Second)
	assert.Equal(t, 3*time.Second, n.Age(now))
}

func TestDisplaySummary(t *testing.T) {
	n := New()
	n.Summary = "Battery low"
	assert.Equal(t, "Battery low", n.DisplaySummary())

	n.DupCount = 2
	assert.Equal(t, "Battery low (3)", n.DisplaySummary())
}

func TestCloseReason_String(t *testing.T) {
	assert.Equal(t, "expired", ReasonExpired.String())
	assert.Equal(t, "dismissed", ReasonDismissed.String())
	assert.Equal(t, "closed", ReasonClosed.String())
	assert.Equal(t, "undefined", ReasonUndefined.String())
	assert.Equal(t, "replaced", ReasonReplaced.String())
	assert.Equal(t, "unknown", CloseReason(42).String())
}

func TestCloseReason_Wire(t *testing.T) {
	assert.EqualValues(t, 1, ReasonExpired.Wire())
	assert.EqualValues(t, 2, ReasonDismissed.Wire())
	assert.EqualValues(t, 3, ReasonClosed.Wire())
	assert.EqualValues(t, 4, ReasonUndefined.Wire())
	// Replacement is internal; the wire only knows 1 through 4.
	assert.EqualValues(t, 4, ReasonReplaced.Wire())
	assert.EqualValues(t, 4, CloseReason(0).Wire())
}
