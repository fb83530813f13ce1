// Package process
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"kunlun/internal/collector"
)

type Collector struct {
	procDir   string
	tcpTables []string
}

func NewCollector(paths collector.Paths) *Collector {
	return &Collector{
		procDir:   paths.ProcFile(),
		tcpTables: []string{paths.ProcFile("net", "tcp"), paths.ProcFile("net", "tcp6")},
	}
}

func (c *Collector) Processes(ctx context.Context) (int, error) {
	return CountProcesses(c.procDir)
}

// Connections counts IPv4 and IPv6 TCP sockets. A missing table, as on hosts
// without IPv6, counts as empty; it is an error only when none can be read.
func (c *Collector) Connections(ctx context.Context) (int, error) {
	var readers []io.Reader
	var errs []error

	for _, path := range c.tcpTables {
		f, err := os.Open(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		defer f.Close()
		readers = append(readers, f)
	}

	if len(readers) == 0 {
		if len(errs) == 0 {
			return 0, fmt.Errorf("connections: no tcp tables under %s", c.procDir)
		}
		return 0, errors.Join(errs...)
	}

	return CountConnections(readers...)
}
