package memory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func ParseMemInfo(r io.Reader) (Info, error) {
	var info Info
	seen := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		key := strings.TrimSuffix(fields[0], ":")
		valueKB, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}

		switch key {
		case "MemTotal":
			info.MemTotal = valueKB
		case "MemFree":
			info.MemFree = valueKB
		case "MemAvailable":
			info.MemAvailable = valueKB
			info.HasAvailable = true
		case "Buffers":
			info.Buffers = valueKB
		case "Cached":
			info.Cached = valueKB
		case "SwapTotal":
			info.SwapTotal = valueKB
		case "SwapFree":
			info.SwapFree = valueKB
		default:
			continue
		}
		seen++
	}

	if err := scanner.Err(); err != nil {
		return Info{}, err
	}
	if seen == 0 {
		return Info{}, fmt.Errorf("meminfo: no recognized keys")
	}

	return info, nil
}
