package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/averen/notifyd/internal/notification"
)

// PlainFormatter formats notifications as plain text, one per line:
//
//	[1] <firefox> Download finished (2 minutes ago)
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Format writes notifications as plain text.
func (f *PlainFormatter) Format(w io.Writer, notifications []notification.Notification) error {
	for i, n := range notifications {
		if err := f.formatNotification(w, i+1, &n); err != nil {
			return err
		}
	}
	return nil
}

// formatNotification formats a single notification line.
func (f *PlainFormatter) formatNotification(w io.Writer, index int, n *notification.Notification) error {
	var sb strings.Builder

	if f.opts.ShowIndex {
		fmt.Fprintf(&sb, "[%d] ", index)
	}
	if f.opts.ShowApp && n.AppName != "" {
		fmt.Fprintf(&sb, "<%s> ", n.AppName)
	}

	sb.WriteString(n.DisplaySummary())

	if body := truncateBody(n.Body, f.opts.BodyMaxLen); body != "" {
		sb.WriteString(": ")
		sb.WriteString(body)
	}

	if f.opts.ShowTime && !n.Timestamp.IsZero() {
		fmt.Fprintf(&sb, " (%s)", humanize.Time(n.Timestamp))
	}

	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// truncateBody collapses whitespace and truncates the body to maxLen
// runes.
func truncateBody(body string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	body = strings.Join(strings.Fields(body), " ")
	runes := []rune(body)
	if len(runes) <= maxLen {
		return body
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
