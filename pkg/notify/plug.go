package notify

// PlugTracker remembers the last reported power source and turns changes
// into charge session signals. The zero value has seen nothing yet, so the
// first Observe always emits.
type PlugTracker struct {
	seen    bool
	current PluggedSource
}

// Observe compares the snapshot's source with the previous one. Repeated
// reports of the same source emit nothing. Unplugging resets st.
func (p *PlugTracker) Observe(s Snapshot, st *ClassifierState) (ChargeSessionSignal, bool) {
	if p.seen && p.current == s.Source {
		return ChargeSessionSignal{}, false
	}
	p.seen = true
	p.current = s.Source

	if !s.Source.Plugged() {
		Reset(st)
		return ChargeSessionSignal{Started: false, Source: SourceNone, Percentage: s.Percentage}, true
	}

	return ChargeSessionSignal{
		Started:    true,
		Source:     s.Source,
		Healthy:    s.Percentage <= HealthyChargeThreshold,
		Percentage: s.Percentage,
	}, true
}

// Current returns the last seen source and whether anything was seen.
func (p *PlugTracker) Current() (PluggedSource, bool) {
	return p.current, p.seen
}
