// Package health estimates long-term battery wear by counting charge cycles.
//
// A charge cycle is one discharge to LowThreshold or below followed by a
// charge to FullThreshold or above while actively charging. The cycle count
// maps onto an estimated health percentage through a fixed piecewise curve
// whose breakpoints are shared with StatusFor.
package health

import "time"

const (
	LowThreshold  = 20
	FullThreshold = 95

	ExcellentCycles = 300
	GoodCycles      = 500
	FairCycles      = 800
	// FloorCycles is where the curve reaches MinHealthPercent.
	FloorCycles      = 1300
	MinHealthPercent = 40
)

// State is the persisted cycle-counting state.
type State struct {
	ChargeCycles    int       `json:"chargeCycles"`
	CycleInProgress bool      `json:"cycleInProgress"`
	FirstUse        time.Time `json:"firstUse"`
	LastLowBattery  time.Time `json:"lastLowBattery,omitempty"`
}

// Transition tells which rule, if any, Observe applied.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionCycleStarted
	TransitionCycleCompleted
	TransitionCycleAbandoned
)

func (t Transition) String() string {
	switch t {
	case TransitionCycleStarted:
		return "started"
	case TransitionCycleCompleted:
		return "completed"
	case TransitionCycleAbandoned:
		return "abandoned"
	default:
		return "none"
	}
}

// Observe records one reading. FirstUse is set on the first call. At most
// one of the following applies, in this order:
//
//   - at or below LowThreshold with no cycle running: a cycle starts
//   - cycle running, charging, at or above FullThreshold: the cycle counts
//   - cycle running, not charging, above FullThreshold: the cycle is dropped
func Observe(st *State, percentage int, charging bool, now time.Time) Transition {
	if st.FirstUse.IsZero() {
		st.FirstUse = now.Round(0)
	}

	switch {
	case percentage <= LowThreshold && !st.CycleInProgress:
		st.CycleInProgress = true
		st.LastLowBattery = now.Round(0)
		return TransitionCycleStarted
	case st.CycleInProgress && charging && percentage >= FullThreshold:
		st.ChargeCycles++
		st.CycleInProgress = false
		return TransitionCycleCompleted
	case st.CycleInProgress && !charging && percentage > FullThreshold:
		st.CycleInProgress = false
		return TransitionCycleAbandoned
	}

	return TransitionNone
}

// EstimatedHealthPercentage maps a cycle count onto the degradation curve.
// All divisions truncate.
//
//	[0, 300)    100 -> 95
//	[300, 500)   95 -> 85
//	[500, 800)   85 -> 70
//	[800, ...)   70 -> 40, floored at 40 from 1300 cycles
func EstimatedHealthPercentage(cycles int) int {
	if cycles < 0 {
		cycles = 0
	}

	switch {
	case cycles < ExcellentCycles:
		return 100 - cycles*5/ExcellentCycles
	case cycles < GoodCycles:
		return 95 - (cycles-ExcellentCycles)*10/(GoodCycles-ExcellentCycles)
	case cycles < FairCycles:
		return 85 - (cycles-GoodCycles)*15/(FairCycles-GoodCycles)
	}

	health := 70 - (cycles-FairCycles)*30/(FloorCycles-FairCycles)
	if health < MinHealthPercent {
		return MinHealthPercent
	}
	return health
}

// Status is a coarse label for battery wear.
type Status string

const (
	StatusExcellent Status = "Excellent"
	StatusGood      Status = "Good"
	StatusFair      Status = "Fair"
	StatusPoor      Status = "Poor"
)

// StatusFor uses the same breakpoints as EstimatedHealthPercentage.
func StatusFor(cycles int) Status {
	switch {
	case cycles < ExcellentCycles:
		return StatusExcellent
	case cycles < GoodCycles:
		return StatusGood
	case cycles < FairCycles:
		return StatusFair
	default:
		return StatusPoor
	}
}

// Description returns a short recommendation for the status.
func Description(s Status) string {
	switch s {
	case StatusExcellent:
		return "Your battery is in excellent condition. Continue with normal usage patterns."
	case StatusGood:
		return "Your battery is in good condition with minimal degradation. Normal usage expected."
	case StatusFair:
		return "Your battery shows moderate wear. You may notice slightly reduced battery life."
	default:
		return "Your battery has significant wear. Consider battery replacement if experiencing poor performance."
	}
}

// DaysSinceFirstUse returns whole days since tracking started, or 0.
func DaysSinceFirstUse(st State, now time.Time) int {
	if st.FirstUse.IsZero() {
		return 0
	}
	d := now.Round(0).Sub(st.FirstUse)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// Summary is the view of the health state shown to users.
type Summary struct {
	Cycles            int       `json:"cycles"`
	HealthPercent     int       `json:"healthPercent"`
	Status            Status    `json:"status"`
	Description       string    `json:"description"`
	DaysSinceFirstUse int       `json:"daysSinceFirstUse"`
	CycleInProgress   bool      `json:"cycleInProgress"`
	FirstUse          time.Time `json:"firstUse"`
}

// Summarize builds a Summary from st.
func Summarize(st State, now time.Time) Summary {
	status := StatusFor(st.ChargeCycles)
	return Summary{
		Cycles:            st.ChargeCycles,
		HealthPercent:     EstimatedHealthPercentage(st.ChargeCycles),
		Status:            status,
		Description:       Description(status),
		DaysSinceFirstUse: DaysSinceFirstUse(st, now),
		CycleInProgress:   st.CycleInProgress,
		FirstUse:          st.FirstUse,
	}
}

// Reset wipes all tracked health data.
func Reset(st *State) {
	*st = State{}
}
