package notify

// ClassifierState is the history Classify needs between readings.
type ClassifierState struct {
	PreviousPercentage   int  `json:"previousPercentage"`
	PreviousNotified     Kind `json:"previousNotified"`
	FullNotificationSent bool `json:"fullNotificationSent"`
}

// Classify feeds one snapshot through the notification state machine and
// returns the notification to show, if any. st is always updated, including
// PreviousPercentage when nothing fires.
//
// While discharging, a changed percentage is checked against the critical
// level first and the warning level second. Critical repeats on every change
// only with AlertEveryTick; warning never repeats until another kind was
// notified or the state was reset. At or below RedAlertLevel the notification
// memory is dropped, so critical fires on every change from there on.
//
// Otherwise (unchanged percentage, or charging) a full notification fires
// once per full-charge episode and is re-armed when the level is back between
// the warning level and FullPercentage.
func Classify(s Snapshot, t Thresholds, st *ClassifierState) (Intent, bool) {
	var (
		intent Intent
		fired  bool
	)

	changed := s.Percentage != st.PreviousPercentage

	if changed && !s.Charging {
		if s.Percentage <= RedAlertLevel {
			st.PreviousNotified = KindNone
		}

		if s.Percentage <= t.CriticalLevel {
			if st.PreviousNotified != KindCritical || t.AlertEveryTick {
				intent = Intent{Kind: KindCritical, Threshold: t.CriticalLevel, Percentage: s.Percentage}
				fired = true
			}
			st.PreviousNotified = KindCritical
		} else if s.Percentage <= t.WarningLevel && t.WarningEnabled {
			if st.PreviousNotified != KindWarning {
				intent = Intent{Kind: KindWarning, Threshold: t.WarningLevel, Percentage: s.Percentage}
				fired = true
			}
			st.PreviousNotified = KindWarning
		}
	} else {
		if s.Full && t.FullNotifyEnabled && !st.FullNotificationSent {
			intent = Intent{Kind: KindFull, Threshold: FullPercentage, Percentage: s.Percentage}
			fired = true
			st.FullNotificationSent = true
		}

		if s.Percentage <= FullPercentage && s.Percentage > t.WarningLevel {
			st.FullNotificationSent = false
		}
	}

	st.PreviousPercentage = s.Percentage

	return intent, fired
}

// Reset forgets which notifications were already shown. It is called when
// the charger is disconnected and leaves PreviousPercentage alone.
func Reset(st *ClassifierState) {
	st.FullNotificationSent = false
	st.PreviousNotified = KindNone
}
