package process

import (
	"os"
	"strconv"
)

// CountProcesses counts the entries of a proc directory whose whole name is
// a non-negative integer.
func CountProcesses(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, e := range entries {
		if isPID(e.Name()) {
			n++
		}
	}
	return n, nil
}

func isPID(name string) bool {
	_, err := strconv.ParseUint(name, 10, 64)
	return err == nil
}
