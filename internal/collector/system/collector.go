// Package system
package system

import (
	"context"
	"os"

	"kunlun/internal/collector"
)

type Collector struct {
	osRelease string
	loadavg   string
}

func NewCollector(paths collector.Paths) *Collector {
	return &Collector{
		osRelease: paths.EtcFile("os-release"),
		loadavg:   paths.ProcFile("loadavg"),
	}
}

// An unreadable os-release yields UnknownOS alongside the error.
func (c *Collector) OSName(ctx context.Context) (string, error) {
	f, err := os.Open(c.osRelease)
	if err != nil {
		return UnknownOS, err
	}
	defer f.Close()

	return ParsePrettyName(f), nil
}

func (c *Collector) LoadAvg(ctx context.Context) (LoadAvg, error) {
	f, err := os.Open(c.loadavg)
	if err != nil {
		return LoadAvg{}, err
	}
	defer f.Close()

	return ParseLoadAvg(f)
}
