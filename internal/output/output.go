// Package output provides output formatters for notification listings.
package output

import (
	"io"

	"github.com/averen/notifyd/internal/notification"
)

// Formatter formats notifications for output.
type Formatter interface {
	// Format writes formatted notifications to the writer.
	Format(w io.Writer, notifications []notification.Notification) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatJSON  FormatType = "json"
	FormatPlain FormatType = "plain"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures plain-text formatter behavior.
type FormatterOptions struct {
	ShowIndex  bool // Show 1-based index prefix
	ShowTime   bool // Show relative time
	ShowApp    bool // Show app name
	BodyMaxLen int  // Maximum body length (0 = omit body)
}

// DefaultFormatterOptions returns sensible defaults for listings.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:  true,
		ShowTime:   true,
		ShowApp:    true,
		BodyMaxLen: 80,
	}
}
