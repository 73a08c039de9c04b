package monitor

import (
	"time"

	"github.com/charlie0129/battnotify/pkg/notifier"
	"github.com/charlie0129/battnotify/pkg/notify"
)

// continuityWindow is how far back ContinuousTicks looks.
const continuityWindow = 5 * time.Minute

// Status is the monitor state served on /status.
type Status struct {
	// Snapshot is nil until the first reading was processed.
	Snapshot     *notify.Snapshot       `json:"snapshot,omitempty"`
	Classifier   notify.ClassifierState `json:"classifier"`
	ChargeSource notify.PluggedSource   `json:"chargeSource"`
	// ChargeSourceKnown is false until the first reading was processed.
	ChargeSourceKnown bool              `json:"chargeSourceKnown"`
	HealthyCharge     bool              `json:"healthyCharge"`
	Thresholds        notify.Thresholds `json:"thresholds"`
	Audible           bool              `json:"audible"`
	RecentTicks       []string          `json:"recentTicks,omitempty"`
	// ContinuousTicks counts the ticks of the last five minutes that
	// followed each other without a gap.
	ContinuousTicks int `json:"continuousTicks"`
	// Stalled is true when the monitor has ticked before but the last tick
	// is more than one poll interval old.
	Stalled bool `json:"stalled"`
}

// Status returns the monitor state at now.
func (m *Monitor) Status(now time.Time) Status {
	m.mu.Lock()
	st := Status{
		Classifier:    m.classifier,
		HealthyCharge: m.healthyCharge,
	}
	st.ChargeSource, st.ChargeSourceKnown = m.tracker.Current()
	if m.hasLast {
		s := m.last
		st.Snapshot = &s
	}
	m.mu.Unlock()

	st.Thresholds = m.conf.Thresholds()
	st.Audible = notifier.Audible(m.conf, now)
	st.RecentTicks = m.RecentTicks()
	st.ContinuousTicks = m.recorder.GetRecordsIn(continuityWindow, m.conf.PollInterval(), now)
	st.Stalled = st.ContinuousTicks == 0 && !m.recorder.GetLastRecord().IsZero()

	return st
}
