// Package disk
package disk

import (
	"context"
	"os"

	"kunlun/internal/collector"
	"kunlun/internal/logger"
)

type Collector struct {
	path  string
	usage UsageFunc
	log   logger.Logger
}

// NewCollector stats mounts with StatUsage unless usage is given.
func NewCollector(paths collector.Paths, usage UsageFunc, log logger.Logger) *Collector {
	if usage == nil {
		usage = StatUsage
	}
	return &Collector{path: paths.ProcFile("mounts"), usage: usage, log: log}
}

// Collect sums capacity over physical mounts. A mount that cannot be stat'ed
// is skipped; only an unreadable mount table is an error.
func (c *Collector) Collect(ctx context.Context) (Totals, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return Totals{}, err
	}
	defer f.Close()

	mounts, err := ParseMounts(f)
	if err != nil {
		return Totals{}, err
	}

	var totals Totals
	for _, m := range mounts {
		if !IsPhysical(m.Device) {
			continue
		}

		u, err := c.usage(ctx, m.MountPoint)
		if err != nil {
			c.log.Debug("failed to stat mount", "device", m.Device, "mountpoint", m.MountPoint, "error", err)
			continue
		}

		totals.TotalKB += u.TotalBytes / 1024
		totals.AvailKB += u.AvailBytes / 1024
		totals.Mounts++
	}

	return totals, nil
}
