package network

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// DefaultExcluded are interface name prefixes whose traffic never leaves the
// host: loopback, bridges and virtual pairs.
var DefaultExcluded = []string{"lo", "br", "veth", "virbr", "docker"}

type Totals struct {
	RxBytes uint64
	TxBytes uint64
}

// ParseDev sums the received and transmitted byte counters of a
// /proc/net/dev table, skipping interfaces whose name starts with any of the
// excluded prefixes. Malformed rows are ignored.
func ParseDev(r io.Reader, excluded []string) (Totals, error) {
	var totals Totals

	scanner := bufio.NewScanner(r)
	// skip headers (first two lines)
	for i := 0; i < 2 && scanner.Scan(); i++ {
	}

	for scanner.Scan() {
		iface, counters, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}

		iface = strings.TrimSpace(iface)
		if iface == "" || isExcluded(iface, excluded) {
			continue
		}

		fields := strings.Fields(counters)
		if len(fields) < 9 {
			continue
		}

		rx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		tx, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			continue
		}

		totals.RxBytes += rx
		totals.TxBytes += tx
	}

	return totals, scanner.Err()
}

func isExcluded(iface string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(iface, p) {
			return true
		}
	}
	return false
}
