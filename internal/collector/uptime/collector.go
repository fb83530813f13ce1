// Package uptime
package uptime

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"kunlun/internal/collector"
)

type Collector struct {
	path string
}

func NewCollector(paths collector.Paths) *Collector {
	return &Collector{path: paths.ProcFile("uptime")}
}

// Collect returns whole seconds since boot.
func (c *Collector) Collect(ctx context.Context) (uint64, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return Parse(f)
}

func Parse(r io.Reader) (uint64, error) {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return 0, err
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, fmt.Errorf("uptime: empty input")
	}

	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("uptime: parse %q: %w", fields[0], err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("uptime: negative value %q", fields[0])
	}

	return uint64(seconds), nil
}
