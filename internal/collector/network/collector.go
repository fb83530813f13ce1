// Package network
package network

import (
	"context"
	"os"

	"kunlun/internal/collector"
)

type Collector struct {
	path     string
	excluded []string
}

func NewCollector(paths collector.Paths) *Collector {
	return &Collector{path: paths.ProcFile("net", "dev"), excluded: DefaultExcluded}
}

func (c *Collector) Collect(ctx context.Context) (Totals, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return Totals{}, err
	}
	defer f.Close()

	return ParseDev(f, c.excluded)
}
