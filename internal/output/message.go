package output

import (
	"fmt"
	"io"

	"github.com/mrz1836/stakeview/internal/notify"
)

// Notification prefixes by type.
const (
	prefixInfo    = "ℹ️  "
	prefixWarn    = "⚠️  "
	prefixSuccess = "✅ "
	prefixError   = "❌ "
)

// Info prints an informational message with an info prefix.
func Info(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, prefixInfo+msg)
}

// Infof prints a formatted informational message.
func Infof(w io.Writer, format string, args ...any) {
	Info(w, fmt.Sprintf(format, args...))
}

// Warn prints a warning message with a warning prefix.
func Warn(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, prefixWarn+msg)
}

// Warnf prints a formatted warning message.
func Warnf(w io.Writer, format string, args ...any) {
	Warn(w, fmt.Sprintf(format, args...))
}

// Success prints a success message with a success prefix.
func Success(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, prefixSuccess+msg)
}

// Notifier returns a notify.Notifier that prints each notification to w.
func Notifier(w io.Writer) notify.Notifier {
	return notify.Func(func(n notify.Notification) {
		switch n.Type {
		case notify.TypeError:
			_, _ = fmt.Fprintln(w, prefixError+n.Message)
		case notify.TypeSuccess:
			Success(w, n.Message)
		default:
			Info(w, n.Message)
		}
	})
}
