//go:build !linux

package disk

import (
	"context"

	"github.com/shirou/gopsutil/v4/disk"
)

func StatUsage(ctx context.Context, path string) (Usage, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return Usage{}, err
	}

	return Usage{TotalBytes: u.Total, AvailBytes: u.Free}, nil
}
