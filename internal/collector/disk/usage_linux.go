//go:build linux

package disk

import (
	"context"

	"golang.org/x/sys/unix"
)

// StatUsage sizes the filesystem in fragment-size units, as df does.
func StatUsage(ctx context.Context, path string) (Usage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Usage{}, err
	}

	frsize := uint64(st.Frsize)
	if frsize == 0 {
		frsize = uint64(st.Bsize)
	}

	return Usage{
		TotalBytes: uint64(st.Blocks) * frsize,
		AvailBytes: uint64(st.Bavail) * frsize,
	}, nil
}
