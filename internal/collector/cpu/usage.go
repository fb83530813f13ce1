package cpu

// ComputePercent returns the busy share of the interval between prev and t,
// in [0, 100], along with the baseline for the next call. The first call and
// any interval in which the counters did not advance yield 0.
func ComputePercent(prev Baseline, t Ticks) (float64, Baseline) {
	next := Baseline{Total: t.Total(), Idle: t.IdleTotal(), Valid: true}

	if !prev.Valid {
		return 0, next
	}

	// Counters went backwards, e.g. after a counter reset; start over.
	if next.Total < prev.Total || next.Idle < prev.Idle {
		return 0, next
	}

	deltaTotal := next.Total - prev.Total
	deltaIdle := next.Idle - prev.Idle
	if deltaTotal == 0 {
		return 0, next
	}
	if deltaIdle > deltaTotal {
		return 0, next
	}

	usage := float64(deltaTotal-deltaIdle) * 100 / float64(deltaTotal)
	return usage, next
}
