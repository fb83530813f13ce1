package system

import (
	"context"

	"github.com/shirou/gopsutil/v4/host"
)

type HostInfo struct {
	Hostname string
	Kernel   string
	Arch     string
}

func (c *Collector) Host(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{Hostname: "unknown"}, err
	}

	return HostInfo{
		Hostname: info.Hostname,
		Kernel:   info.KernelVersion,
		Arch:     info.KernelArch,
	}, nil
}
