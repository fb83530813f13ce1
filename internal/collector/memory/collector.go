// Package memory
package memory

import (
	"context"
	"os"

	"kunlun/internal/collector"
)

type Collector struct {
	path string
}

func NewCollector(paths collector.Paths) *Collector {
	return &Collector{path: paths.ProcFile("meminfo")}
}

func (c *Collector) Collect(ctx context.Context) (Info, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	return ParseMemInfo(f)
}
