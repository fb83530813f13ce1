package process

import (
	"bufio"
	"io"
	"strings"
)

// CountConnections counts socket rows across /proc/net/tcp style tables.
// The first line of each table is a column header and is not counted.
func CountConnections(tables ...io.Reader) (int, error) {
	n := 0
	for _, t := range tables {
		scanner := bufio.NewScanner(t)
		scanner.Scan()

		for scanner.Scan() {
			if strings.Contains(scanner.Text(), ":") {
				n++
			}
		}
		if err := scanner.Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}
