package notify

import (
	"errors"
	"testing"
)

type step struct {
	snap     Snapshot
	wantKind Kind // KindNone means nothing should fire
}

func discharging(p int) Snapshot {
	return Snapshot{Percentage: p, Source: SourceNone}
}

func charging(p int) Snapshot {
	return Snapshot{Percentage: p, Charging: true, Source: SourceAC}
}

func full(p int) Snapshot {
	return Snapshot{Percentage: p, Charging: true, Full: true, Source: SourceAC}
}

func runSteps(t *testing.T, th Thresholds, st *ClassifierState, steps []step) {
	t.Helper()
	for i, s := range steps {
		intent, fired := Classify(s.snap, th, st)
		if s.wantKind == KindNone {
			if fired {
				t.Fatalf("step %d (%d%%): expected no notification, got %s", i, s.snap.Percentage, intent.Kind)
			}
			continue
		}
		if !fired {
			t.Fatalf("step %d (%d%%): expected %s notification, got none", i, s.snap.Percentage, s.wantKind)
		}
		if intent.Kind != s.wantKind {
			t.Fatalf("step %d (%d%%): expected %s notification, got %s", i, s.snap.Percentage, s.wantKind, intent.Kind)
		}
		if intent.Percentage != s.snap.Percentage {
			t.Fatalf("step %d: intent percentage = %d, want %d", i, intent.Percentage, s.snap.Percentage)
		}
		if st.PreviousPercentage != s.snap.Percentage {
			t.Fatalf("step %d: previous percentage = %d, want %d", i, st.PreviousPercentage, s.snap.Percentage)
		}
	}
}

func TestClassify(t *testing.T) {
	everyTick := DefaultThresholds()
	everyTick.AlertEveryTick = true

	noWarning := DefaultThresholds()
	noWarning.WarningEnabled = false

	noFull := DefaultThresholds()
	noFull.FullNotifyEnabled = false

	tests := []struct {
		name  string
		th    Thresholds
		steps []step
	}{
		{
			name: "unchanged reading does not repeat a warning",
			th:   DefaultThresholds(),
			steps: []step{
				{snap: discharging(35), wantKind: KindWarning},
				{snap: discharging(35)},
				{snap: discharging(35)},
			},
		},
		{
			name: "warning does not repeat on every tick",
			th:   everyTick,
			steps: []step{
				{snap: discharging(40), wantKind: KindWarning},
				{snap: discharging(39)},
				{snap: discharging(38)},
			},
		},
		{
			name: "critical fires once without alert every tick",
			th:   DefaultThresholds(),
			steps: []step{
				{snap: discharging(20), wantKind: KindCritical},
				{snap: discharging(19)},
				{snap: discharging(18)},
			},
		},
		{
			name: "critical repeats on every change with alert every tick",
			th:   everyTick,
			steps: []step{
				{snap: discharging(20), wantKind: KindCritical},
				{snap: discharging(19), wantKind: KindCritical},
				{snap: discharging(19)},
				{snap: discharging(18), wantKind: KindCritical},
			},
		},
		{
			name: "warning then critical",
			th:   DefaultThresholds(),
			steps: []step{
				{snap: discharging(60)},
				{snap: discharging(41)},
				{snap: discharging(40), wantKind: KindWarning},
				{snap: discharging(21)},
				{snap: discharging(20), wantKind: KindCritical},
			},
		},
		{
			name: "critical wins when both thresholds match",
			th:   DefaultThresholds(),
			steps: []step{
				{snap: discharging(10), wantKind: KindCritical},
			},
		},
		{
			name: "red alert level drops notification memory",
			th:   DefaultThresholds(),
			steps: []step{
				{snap: discharging(15), wantKind: KindCritical},
				{snap: discharging(10)},
				{snap: discharging(5)},
				{snap: discharging(4), wantKind: KindCritical},
				{snap: discharging(3), wantKind: KindCritical},
				{snap: discharging(3)},
			},
		},
		{
			name: "no low battery notification while charging",
			th:   DefaultThresholds(),
			steps: []step{
				{snap: charging(10)},
				{snap: charging(3)},
				{snap: charging(30)},
			},
		},
		{
			name: "warning disabled",
			th:   noWarning,
			steps: []step{
				{snap: discharging(35)},
				{snap: discharging(30)},
				{snap: discharging(20), wantKind: KindCritical},
			},
		},
		{
			name: "full fires once while staying full",
			th:   DefaultThresholds(),
			steps: []step{
				{snap: full(100), wantKind: KindFull},
				{snap: full(100)},
				{snap: full(100)},
				{snap: full(100)},
			},
		},
		{
			name: "full re-armed after discharging and charging again",
			th:   DefaultThresholds(),
			steps: []step{
				{snap: full(100), wantKind: KindFull},
				{snap: full(100)},
				{snap: discharging(90)},
				{snap: discharging(39), wantKind: KindWarning},
				{snap: charging(39)},
				{snap: charging(60)},
				{snap: charging(96)},
				{snap: full(100), wantKind: KindFull},
				{snap: full(100)},
			},
		},
		{
			name: "full notification disabled",
			th:   noFull,
			steps: []step{
				{snap: full(100)},
				{snap: full(100)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &ClassifierState{}
			runSteps(t, tt.th, st, tt.steps)
		})
	}
}

func TestClassifyIntentThreshold(t *testing.T) {
	th := Thresholds{WarningLevel: 50, CriticalLevel: 15, WarningEnabled: true, FullNotifyEnabled: true}
	st := &ClassifierState{}

	intent, fired := Classify(discharging(45), th, st)
	if !fired || intent.Threshold != 50 {
		t.Fatalf("expected warning with threshold 50, got %+v (fired=%t)", intent, fired)
	}

	intent, fired = Classify(discharging(12), th, st)
	if !fired || intent.Threshold != 15 {
		t.Fatalf("expected critical with threshold 15, got %+v (fired=%t)", intent, fired)
	}

	intent, fired = Classify(full(100), th, st)
	if !fired || intent.Threshold != FullPercentage {
		t.Fatalf("expected full with threshold %d, got %+v (fired=%t)", FullPercentage, intent, fired)
	}
}

// Levels that bypassed validation must not panic; the critical check wins.
func TestClassifyMisconfiguredThresholds(t *testing.T) {
	th := Thresholds{WarningLevel: 30, CriticalLevel: 50, WarningEnabled: true, FullNotifyEnabled: true}
	if err := th.Validate(); err == nil {
		t.Fatalf("expected validation error for critical >= warning")
	}

	st := &ClassifierState{}
	for p := 60; p >= 0; p-- {
		intent, fired := Classify(discharging(p), th, st)
		if fired && intent.Kind == KindWarning {
			t.Fatalf("warning emitted at %d%% with critical level above warning level", p)
		}
		if p == 50 && (!fired || intent.Kind != KindCritical) {
			t.Fatalf("expected critical at %d%%, got %+v (fired=%t)", p, intent, fired)
		}
	}
}

func TestResetClearsSuppressionNotHistory(t *testing.T) {
	th := DefaultThresholds()
	st := &ClassifierState{}

	if _, fired := Classify(discharging(35), th, st); !fired {
		t.Fatalf("expected warning at 35%%")
	}
	if _, fired := Classify(discharging(34), th, st); fired {
		t.Fatalf("warning should be suppressed at 34%%")
	}

	Reset(st)
	if st.PreviousPercentage != 34 {
		t.Fatalf("Reset changed previous percentage to %d", st.PreviousPercentage)
	}
	if st.PreviousNotified != KindNone || st.FullNotificationSent {
		t.Fatalf("Reset left state %+v", *st)
	}

	intent, fired := Classify(discharging(33), th, st)
	if !fired || intent.Kind != KindWarning {
		t.Fatalf("expected warning after reset, got %+v (fired=%t)", intent, fired)
	}
}

func TestThresholdsValidate(t *testing.T) {
	tests := []struct {
		name    string
		th      Thresholds
		wantErr bool
	}{
		{name: "defaults", th: DefaultThresholds()},
		{name: "equal levels", th: Thresholds{WarningLevel: 20, CriticalLevel: 20}, wantErr: true},
		{name: "critical above warning", th: Thresholds{WarningLevel: 20, CriticalLevel: 30}, wantErr: true},
		{name: "warning above 100", th: Thresholds{WarningLevel: 101, CriticalLevel: 30}, wantErr: true},
		{name: "negative critical", th: Thresholds{WarningLevel: 40, CriticalLevel: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.th.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidThresholds) {
				t.Fatalf("Validate() error = %v, want ErrInvalidThresholds", err)
			}
		})
	}
}
