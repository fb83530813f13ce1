// Package cpu
package cpu

import (
	"context"
	"os"

	"github.com/shirou/gopsutil/v4/cpu"

	"kunlun/internal/collector"
)

type Collector struct {
	statPath string
}

func NewCollector(paths collector.Paths) *Collector {
	return &Collector{statPath: paths.ProcFile("stat")}
}

func (c *Collector) Ticks(ctx context.Context) (Ticks, error) {
	f, err := os.Open(c.statPath)
	if err != nil {
		return Ticks{}, err
	}
	defer f.Close()

	return ParseTicks(f)
}

// Cores reports the number of online logical processors.
func (c *Collector) Cores(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}
