package system

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type LoadAvg struct {
	Load1   float64
	Load5   float64
	Load15  float64
	Running uint64
	Total   uint64
}

// ParseLoadAvg reads the "0.52 0.58 0.59 2/1337 4242" line of /proc/loadavg.
func ParseLoadAvg(r io.Reader) (LoadAvg, error) {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return LoadAvg{}, err
	}

	fields := strings.Fields(string(data))
	if len(fields) < 4 {
		return LoadAvg{}, fmt.Errorf("loadavg: expected at least 4 fields, got %d", len(fields))
	}

	var load LoadAvg
	for i, dst := range []*float64{&load.Load1, &load.Load5, &load.Load15} {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return LoadAvg{}, fmt.Errorf("loadavg: parse %q: %w", fields[i], err)
		}
		*dst = v
	}

	running, total, ok := strings.Cut(fields[3], "/")
	if !ok {
		return LoadAvg{}, fmt.Errorf("loadavg: malformed task field %q", fields[3])
	}
	if load.Running, err = strconv.ParseUint(running, 10, 64); err != nil {
		return LoadAvg{}, fmt.Errorf("loadavg: parse running tasks: %w", err)
	}
	if load.Total, err = strconv.ParseUint(total, 10, 64); err != nil {
		return LoadAvg{}, fmt.Errorf("loadavg: parse total tasks: %w", err)
	}

	return load, nil
}
