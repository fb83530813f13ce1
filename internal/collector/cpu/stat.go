package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseTicks finds the aggregate "cpu" line of a /proc/stat table. Columns
// the kernel does not report are left at zero.
func ParseTicks(r io.Reader) (Ticks, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "cpu" {
			continue
		}

		values := fields[1:]
		if len(values) < 4 {
			return Ticks{}, fmt.Errorf("cpu stat: expected at least 4 counters, got %d", len(values))
		}

		var t Ticks
		dst := []*uint64{&t.User, &t.Nice, &t.System, &t.Idle, &t.Iowait, &t.Irq, &t.Softirq, &t.Steal}
		for i, p := range dst {
			if i >= len(values) {
				break
			}
			v, err := strconv.ParseUint(values[i], 10, 64)
			if err != nil {
				return Ticks{}, fmt.Errorf("cpu stat: parse column %d: %w", i+1, err)
			}
			*p = v
		}

		return t, nil
	}

	if err := scanner.Err(); err != nil {
		return Ticks{}, err
	}
	return Ticks{}, fmt.Errorf("cpu stat: aggregate cpu line not found")
}
