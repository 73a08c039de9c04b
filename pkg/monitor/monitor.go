// Package monitor runs the battery monitor session: it feeds readings through
// the notification classifier and the health estimator and dispatches the
// resulting notifications.
package monitor

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/events"
	"github.com/charlie0129/battnotify/pkg/health"
	"github.com/charlie0129/battnotify/pkg/notifier"
	"github.com/charlie0129/battnotify/pkg/notify"
	"github.com/charlie0129/battnotify/pkg/powerinfo"
)

// Outcome is what a single reading produced.
type Outcome struct {
	Intent   notify.Intent `json:"intent"`
	Notified bool          `json:"notified"`

	Charge        notify.ChargeSessionSignal `json:"charge"`
	ChargeChanged bool                       `json:"chargeChanged"`

	Transition health.Transition `json:"-"`
}

// Monitor owns the classifier, plug tracker and health state. All of them
// are mutated under mu, in arrival order.
type Monitor struct {
	conf     config.Config
	source   powerinfo.Source
	notifier notifier.Notifier
	store    health.Store
	hub      *events.EventHub

	mu             sync.Mutex
	classifier     notify.ClassifierState
	tracker        notify.PlugTracker
	healthyCharge  bool
	health         health.State
	last           notify.Snapshot
	hasLast        bool
	lastLogged     notify.Snapshot
	lastLoggedTime time.Time

	recorder *TimeSeriesRecorder
}

// New returns a Monitor. hub may be nil.
func New(conf config.Config, source powerinfo.Source, n notifier.Notifier, store health.Store, hub *events.EventHub) *Monitor {
	return &Monitor{
		conf:     conf,
		source:   source,
		notifier: n,
		store:    store,
		hub:      hub,
		recorder: NewTimeSeriesRecorder(60),
	}
}

// Load restores the persisted health state.
func (m *Monitor) Load() error {
	st, err := m.store.Load()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.health = st
	m.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"chargeCycles":    st.ChargeCycles,
		"cycleInProgress": st.CycleInProgress,
	}).Debug("health state loaded")

	return nil
}

// Process feeds one snapshot through the plug tracker, the classifier and
// the health estimator, then dispatches notifications.
func (m *Monitor) Process(s notify.Snapshot, now time.Time) Outcome {
	var out Outcome

	m.mu.Lock()

	out.Charge, out.ChargeChanged = m.tracker.Observe(s, &m.classifier)
	if out.ChargeChanged {
		m.healthyCharge = out.Charge.Started && out.Charge.Healthy
	}

	out.Intent, out.Notified = notify.Classify(s, m.conf.Thresholds(), &m.classifier)
	healthyCharge := m.healthyCharge

	firstUse := m.health.FirstUse.IsZero()
	out.Transition = health.Observe(&m.health, s.Percentage, s.Charging, now)
	if firstUse || out.Transition != health.TransitionNone {
		if err := m.store.Save(m.health); err != nil {
			logrus.WithError(err).Error("failed to save health state")
		}
	}
	healthState := m.health

	m.last = s
	m.hasLast = true
	m.printStatus(s, now)

	m.mu.Unlock()

	m.dispatch(out, healthyCharge, healthState, now)

	return out
}

func (m *Monitor) dispatch(out Outcome, healthyCharge bool, st health.State, now time.Time) {
	if out.ChargeChanged {
		logrus.WithFields(logrus.Fields{
			"started":    out.Charge.Started,
			"source":     out.Charge.Source.String(),
			"healthy":    out.Charge.Healthy,
			"percentage": out.Charge.Percentage,
		}).Info("charge session changed")

		m.hub.Publish(events.ChargeSession, events.ChargeSessionEvent{
			Started:    out.Charge.Started,
			Source:     out.Charge.Source,
			Healthy:    out.Charge.Healthy,
			Percentage: out.Charge.Percentage,
			Ts:         now.Unix(),
		})

		var err error
		if out.Charge.Started {
			err = m.notifier.Notify(notifier.RenderCharge(out.Charge, m.conf, now))
		} else {
			err = m.notifier.Clear()
		}
		if err != nil {
			logrus.WithError(err).Warn("failed to deliver charge notification")
		}
	}

	if out.Notified {
		n := notifier.Render(out.Intent, healthyCharge, m.conf, now)
		if err := m.notifier.Notify(n); err != nil {
			logrus.WithError(err).WithField("kind", out.Intent.Kind.String()).Warn("failed to deliver notification")
		}
	}

	if out.Transition != health.TransitionNone {
		summary := health.Summarize(st, now)
		logrus.WithFields(logrus.Fields{
			"transition":    out.Transition.String(),
			"chargeCycles":  summary.Cycles,
			"healthPercent": summary.HealthPercent,
		}).Info("charge cycle transition")

		m.hub.Publish(events.HealthCycle, events.HealthCycleEvent{
			Transition:    out.Transition.String(),
			Cycles:        summary.Cycles,
			HealthPercent: summary.HealthPercent,
			Status:        string(summary.Status),
			Ts:            now.Unix(),
		})
	}
}

// Tick reads the source once and processes the reading. A failed read is
// logged and skipped.
func (m *Monitor) Tick(now time.Time) (Outcome, bool) {
	m.checkMissedTicks(now)
	m.recorder.AddRecord(now)

	s, err := m.source.Read()
	if err != nil {
		logrus.WithError(err).Error("failed to read battery, skipping this tick")
		return Outcome{}, false
	}

	return m.Process(s, now), true
}

// Run ticks every poll interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	for {
		m.Tick(time.Now())

		timer := time.NewTimer(m.conf.PollInterval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (m *Monitor) checkMissedTicks(now time.Time) {
	last := m.recorder.GetLastRecord()
	if last.IsZero() {
		return
	}

	interval := m.conf.PollInterval()
	if gap := now.Round(0).Sub(last); gap >= 2*interval+time.Second {
		logrus.WithFields(logrus.Fields{
			"gap":      gap.String(),
			"interval": interval.String(),
		}).Info("possibly missed ticks, system may have been asleep")
	}
}

// RecentTicks returns the recorded tick times.
func (m *Monitor) RecentTicks() []string {
	return m.recorder.GetRecordsString()
}

// LastSnapshot returns the last processed reading.
func (m *Monitor) LastSnapshot() (notify.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.hasLast
}

// ClassifierState returns a copy of the classifier state.
func (m *Monitor) ClassifierState() notify.ClassifierState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.classifier
}

// ChargeSource returns the current power source and whether one was seen.
func (m *Monitor) ChargeSource() (notify.PluggedSource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.Current()
}

// HealthState returns a copy of the health state.
func (m *Monitor) HealthState() health.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.health
}

// HealthSummary summarizes the health state at now.
func (m *Monitor) HealthSummary(now time.Time) health.Summary {
	return health.Summarize(m.HealthState(), now)
}

// ResetHealth clears the health history and persists the empty state.
func (m *Monitor) ResetHealth() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	health.Reset(&m.health)
	return m.store.Save(m.health)
}

// SaveHealth persists the current health state.
func (m *Monitor) SaveHealth() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.Save(m.health)
}

// printStatus logs the reading at debug level when it changed, at trace
// level otherwise. Called with mu held.
func (m *Monitor) printStatus(s notify.Snapshot, now time.Time) {
	fields := logrus.Fields{
		"percentage":           s.Percentage,
		"charging":             s.Charging,
		"full":                 s.Full,
		"source":               s.Source.String(),
		"previousNotified":     m.classifier.PreviousNotified.String(),
		"fullNotificationSent": m.classifier.FullNotificationSent,
		"cycleInProgress":      m.health.CycleInProgress,
	}

	defer func() { m.lastLoggedTime = now }()

	// Skip printing if the last print was less than one interval ago and everything is the same.
	if now.Sub(m.lastLoggedTime) < m.conf.PollInterval()+time.Second && reflect.DeepEqual(m.lastLogged, s) {
		logrus.WithFields(fields).Trace("monitor status")
		return
	}

	logrus.WithFields(fields).Debug("monitor status")

	m.lastLogged = s
}
