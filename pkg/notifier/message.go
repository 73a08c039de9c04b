package notifier

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/alertwindow"
	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/notify"
)

// Notification is a rendered, ready-to-show notification.
type Notification struct {
	Kind       notify.Kind `json:"kind"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Ticker     string      `json:"ticker"`
	Percentage int         `json:"percentage"`
	Threshold  int         `json:"threshold"`
	// Healthy is set on full notifications when the charge started low.
	Healthy bool `json:"healthy"`
	// Audible is false outside the configured alert time.
	Audible bool      `json:"audible"`
	Sticky  bool      `json:"sticky"`
	Time    time.Time `json:"time"`
}

// Urgent reports whether the notification should bypass normal priority.
func (n Notification) Urgent() bool {
	return n.Kind == notify.KindCritical
}

// Render turns a classifier intent into a notification.
func Render(intent notify.Intent, healthy bool, conf config.Config, now time.Time) Notification {
	n := Notification{
		Kind:       intent.Kind,
		Percentage: intent.Percentage,
		Threshold:  intent.Threshold,
		Audible:    Audible(conf, now),
		Sticky:     conf.StickyNotifications(),
		Time:       now,
	}

	switch intent.Kind {
	case notify.KindCritical:
		n.Ticker = fmt.Sprintf("Battery is below %d%%!", intent.Threshold)
		n.Title = "Battery critically low"
		n.Content = fmt.Sprintf("Battery is at %d%%, at or below the critical level of %d%%. Connect a charger now.", intent.Percentage, intent.Threshold)
	case notify.KindWarning:
		n.Ticker = fmt.Sprintf("Battery is below %d%%", intent.Threshold)
		n.Title = "Battery low"
		n.Content = fmt.Sprintf("Battery is at %d%%, at or below the warning level of %d%%. Consider charging soon.", intent.Percentage, intent.Threshold)
	default:
		n.Healthy = healthy
		n.Ticker = "Battery is fully charged"
		if healthy {
			n.Title = "Battery fully charged, healthy charge"
		} else {
			n.Title = "Battery fully charged"
		}
		n.Content = "You can unplug the charger now. Unplugging at full charge helps keep the battery healthy."
	}

	return n
}

// RenderCharge turns a charge-start signal into a notification. Charge-stop
// signals have no notification; they clear the current one instead.
func RenderCharge(sig notify.ChargeSessionSignal, conf config.Config, now time.Time) Notification {
	n := Notification{
		Kind:       notify.KindNone,
		Percentage: sig.Percentage,
		Healthy:    sig.Healthy,
		Audible:    false,
		Sticky:     false,
		Time:       now,
	}

	if sig.Healthy {
		n.Title = "Healthy charging started"
	} else {
		n.Title = "Charging started"
	}
	n.Content = fmt.Sprintf("Charging from %s at %d%%.", sig.Source, sig.Percentage)
	n.Ticker = n.Title + ", " + n.Content

	return n
}

// Audible reports whether alerts may make noise at now.
func Audible(conf config.Config, now time.Time) bool {
	if !conf.LimitAlertTime() {
		return true
	}

	w, err := alertwindow.Parse(conf.AlertTimeStart(), conf.AlertTimeEnd())
	if err != nil {
		logrus.WithError(err).Warn("invalid alert time window, alerts stay audible")
		return true
	}

	return w.Contains(now)
}
