package cpu

// Ticks are the cumulative jiffy counters of the aggregate "cpu" line.
type Ticks struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	Iowait  uint64
	Irq     uint64
	Softirq uint64
	Steal   uint64
}

func (t Ticks) Total() uint64 {
	return t.User + t.Nice + t.System + t.Idle +
		t.Iowait + t.Irq + t.Softirq + t.Steal
}

func (t Ticks) IdleTotal() uint64 {
	return t.Idle + t.Iowait
}

// Baseline is the previous reading a percentage is computed against.
// The zero value means no reading has been taken yet.
type Baseline struct {
	Total uint64
	Idle  uint64
	Valid bool
}
