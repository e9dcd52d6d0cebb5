package notify

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Notifier delivers a transient, best-effort notification to the user.
// Implementations must be safe to call on systems where the underlying
// delivery mechanism is absent; the caller logs failures and moves on.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Options configures the notifier stack built by New.
type Options struct {
	// Enabled controls whether any notification is sent at all.
	Enabled bool

	// AppName is reported to the desktop notification service.
	AppName string

	// DurationMs is the desktop notification display time in milliseconds.
	DurationMs int

	// NtfyTopic, when non-empty, additionally publishes each notification
	// to this ntfy topic URL.
	NtfyTopic string

	// RequestTimeout bounds the ntfy HTTP request. Zero uses a default.
	RequestTimeout time.Duration
}

// New builds the configured notifier: the desktop notifier, plus ntfy when
// a topic is configured, or a noop when notifications are disabled.
func New(opts Options) Notifier {
	if !opts.Enabled {
		return NoopNotifier{}
	}

	notifiers := []Notifier{NewDesktopNotifier(opts.AppName, opts.DurationMs)}

	if topic := strings.TrimSpace(opts.NtfyTopic); topic != "" {
		notifiers = append(notifiers, NewNtfyNotifier(topic, opts.RequestTimeout))
	}

	if len(notifiers) == 1 {
		return notifiers[0]
	}
	return MultiNotifier(notifiers)
}

// NoopNotifier ignores every notification.
type NoopNotifier struct{}

// Notify implements Notifier.
func (NoopNotifier) Notify(context.Context, string, string) error { return nil }

// MultiNotifier fans a notification out to every wrapped notifier. All
// notifiers are attempted even when earlier ones fail; the errors are joined.
type MultiNotifier []Notifier

// Notify implements Notifier.
func (m MultiNotifier) Notify(ctx context.Context, title, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
