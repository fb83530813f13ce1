package memory

// Info holds the /proc/meminfo values the agent reports, in kB.
type Info struct {
	MemTotal     uint64
	MemFree      uint64
	MemAvailable uint64
	Buffers      uint64
	Cached       uint64
	SwapTotal    uint64
	SwapFree     uint64

	// HasAvailable is false on kernels older than 3.14.
	HasAvailable bool
}

func (i Info) TotalMiB() float64     { return kbToMiB(i.MemTotal) }
func (i Info) FreeMiB() float64      { return kbToMiB(i.MemFree) }
func (i Info) SwapTotalMiB() float64 { return kbToMiB(i.SwapTotal) }
func (i Info) SwapFreeMiB() float64  { return kbToMiB(i.SwapFree) }

// UsedMiB is total minus available, or total minus free when the kernel
// does not report MemAvailable.
func (i Info) UsedMiB() float64 {
	spare := i.MemFree
	if i.HasAvailable {
		spare = i.MemAvailable
	}
	if spare > i.MemTotal {
		return 0
	}
	return kbToMiB(i.MemTotal - spare)
}

func kbToMiB(kb uint64) float64 {
	return float64(kb) / 1024
}
