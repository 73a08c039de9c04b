package events

import (
	"encoding/json"

	"github.com/charlie0129/battnotify/pkg/notify"
)

// Event name constants
const (
	NotificationSent    = "notification.sent"
	NotificationCleared = "notification.cleared"
	ChargeSession       = "charge.session"
	HealthCycle         = "health.cycle"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// NotificationEvent is the typed payload for notification.sent.
type NotificationEvent struct {
	Kind       notify.Kind `json:"kind"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Percentage int         `json:"percentage"`
	Threshold  int         `json:"threshold"`
	Audible    bool        `json:"audible"`
	Ts         int64       `json:"ts"`
}

// ChargeSessionEvent is the typed payload for charge.session.
type ChargeSessionEvent struct {
	Started    bool                 `json:"started"`
	Source     notify.PluggedSource `json:"source"`
	Healthy    bool                 `json:"healthy"`
	Percentage int                  `json:"percentage"`
	Ts         int64                `json:"ts"`
}

// HealthCycleEvent is the typed payload for health.cycle.
type HealthCycleEvent struct {
	Transition    string `json:"transition"`
	Cycles        int    `json:"cycles"`
	HealthPercent int    `json:"healthPercent"`
	Status        string `json:"status"`
	Ts            int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.NotificationEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Kind, payload.Title)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
