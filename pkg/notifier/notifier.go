package notifier

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/events"
	"github.com/charlie0129/battnotify/pkg/notify"
)

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(n Notification) error
	// Clear removes the currently shown battery notification, if the
	// backend supports that.
	Clear() error
}

var _ Notifier = &LogNotifier{}

// LogNotifier writes notifications to the log.
type LogNotifier struct {
	Logger logrus.FieldLogger
}

func (l *LogNotifier) logger() logrus.FieldLogger {
	if l.Logger == nil {
		return logrus.StandardLogger()
	}
	return l.Logger
}

func (l *LogNotifier) Notify(n Notification) error {
	entry := l.logger().WithFields(logrus.Fields{
		"kind":       n.Kind.String(),
		"percentage": n.Percentage,
		"threshold":  n.Threshold,
		"audible":    n.Audible,
		"sticky":     n.Sticky,
	})
	if n.Urgent() {
		entry.Warnf("%s: %s", n.Title, n.Content)
	} else {
		entry.Infof("%s: %s", n.Title, n.Content)
	}
	return nil
}

func (l *LogNotifier) Clear() error {
	l.logger().Debug("battery notification cleared")
	return nil
}

var _ Notifier = &HubNotifier{}

// HubNotifier publishes notifications as server-sent events.
type HubNotifier struct {
	Hub *events.EventHub
}

func (h *HubNotifier) Notify(n Notification) error {
	h.Hub.Publish(events.NotificationSent, events.NotificationEvent{
		Kind:       n.Kind,
		Title:      n.Title,
		Content:    n.Content,
		Percentage: n.Percentage,
		Threshold:  n.Threshold,
		Audible:    n.Audible,
		Ts:         n.Time.Unix(),
	})
	return nil
}

func (h *HubNotifier) Clear() error {
	h.Hub.Publish(events.NotificationCleared, events.NotificationEvent{
		Kind: notify.KindNone,
		Ts:   time.Now().Unix(),
	})
	return nil
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

var _ Notifier = Multi{}

func (m Multi) Notify(n Notification) error {
	var errs []error
	for _, nt := range m {
		if err := nt.Notify(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Clear() error {
	var errs []error
	for _, nt := range m {
		if err := nt.Clear(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type conditional struct {
	enabled func() bool
	next    Notifier
}

// When delivers to n only while enabled returns true.
func When(enabled func() bool, n Notifier) Notifier {
	return &conditional{enabled: enabled, next: n}
}

func (c *conditional) Notify(n Notification) error {
	if !c.enabled() {
		return nil
	}
	return c.next.Notify(n)
}

func (c *conditional) Clear() error {
	if !c.enabled() {
		return nil
	}
	return c.next.Clear()
}
