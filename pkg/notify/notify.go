// Package notify delivers alert messages as OS notifications.
//
// The alert debouncer decides whether and what to notify; this package only
// delivers. The enabled flag is the external permission gate: when off,
// Deliver is a silent no-op and the debouncer is told not to fire at all.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/ferrovax/claude-compass/pkg/alert"
	"github.com/ferrovax/claude-compass/pkg/logger"
)

// Notifier delivers alert messages.
type Notifier interface {
	// Deliver sends the message as an OS notification. A nil message is a
	// no-op. Critical messages request an audible notification.
	Deliver(msg *alert.Message) error

	// Enabled reports whether delivery is permitted.
	Enabled() bool
}

// desktopNotifier implements Notifier using the system notification service.
type desktopNotifier struct {
	enabled bool
	logger  logger.Logger
}

// New creates a desktop notifier.
//
// Parameters:
//   - enabled: Permission gate; when false Deliver does nothing
//   - log: Logger instance
func New(enabled bool, log logger.Logger) Notifier {
	if log == nil {
		log = logger.Noop()
	}
	return &desktopNotifier{
		enabled: enabled,
		logger:  log,
	}
}

// Deliver implements Notifier.Deliver.
func (n *desktopNotifier) Deliver(msg *alert.Message) error {
	if msg == nil || !n.enabled {
		return nil
	}

	var err error
	if msg.Sound {
		err = beeep.Alert(msg.Title, msg.Body, "")
	} else {
		err = beeep.Notify(msg.Title, msg.Body, "")
	}
	if err != nil {
		n.logger.Error("notification delivery failed",
			"severity", msg.Severity.String(),
			"bucket", msg.Bucket,
			"error", err)
		return fmt.Errorf("failed to deliver notification: %w", err)
	}

	n.logger.Info("notification delivered",
		"severity", msg.Severity.String(),
		"bucket", msg.Bucket)
	return nil
}

// Enabled implements Notifier.Enabled.
func (n *desktopNotifier) Enabled() bool {
	return n.enabled
}
