// Package metrics
package metrics

import (
	"context"
	"runtime"
	"sync"
	"time"

	"kunlun/internal/collector"
	"kunlun/internal/collector/cpu"
	"kunlun/internal/collector/disk"
	"kunlun/internal/collector/identity"
	"kunlun/internal/collector/memory"
	"kunlun/internal/collector/network"
	"kunlun/internal/collector/process"
	"kunlun/internal/collector/system"
	"kunlun/internal/collector/uptime"
	"kunlun/internal/domain"
	"kunlun/internal/logger"
)

type SamplerOptions struct {
	Paths    collector.Paths
	Identity *identity.Resolver
	Name     string
	Location string

	// DiskUsage overrides how mounts are stat'ed.
	DiskUsage disk.UsageFunc
}

// Sampler takes one Snapshot per call. A failing reader is logged and its
// fields keep their zero values; Collect itself never fails.
type Sampler struct {
	uptime   *uptime.Collector
	system   *system.Collector
	cpu      *cpu.Collector
	memory   *memory.Collector
	network  *network.Collector
	disk     *disk.Collector
	process  *process.Collector
	identity *identity.Resolver

	name     string
	location string
	log      logger.Logger

	mu       sync.Mutex
	baseline cpu.Baseline
}

func NewSampler(opts SamplerOptions, log logger.Logger) *Sampler {
	ident := opts.Identity
	if ident == nil {
		ident = identity.NewResolver(identity.DefaultFiles(opts.Paths.Etc), "", log)
	}

	return &Sampler{
		uptime:   uptime.NewCollector(opts.Paths),
		system:   system.NewCollector(opts.Paths),
		cpu:      cpu.NewCollector(opts.Paths),
		memory:   memory.NewCollector(opts.Paths),
		network:  network.NewCollector(opts.Paths),
		disk:     disk.NewCollector(opts.Paths, opts.DiskUsage, log),
		process:  process.NewCollector(opts.Paths),
		identity: ident,
		name:     opts.Name,
		location: opts.Location,
		log:      log,
	}
}

func (s *Sampler) Collect(ctx context.Context) domain.Snapshot {
	snap := domain.Snapshot{
		MachineID:   s.identity.MachineID(),
		Name:        s.name,
		Location:    s.location,
		CollectedAt: time.Now().UTC(),
	}

	if val, err := s.uptime.Collect(ctx); err != nil {
		s.log.Warn("collector", "name", "uptime", "error", err)
	} else {
		snap.UptimeSeconds = val
	}

	if val, err := s.system.OSName(ctx); err != nil {
		s.log.Warn("collector", "name", "os", "error", err)
		snap.System = system.UnknownOS
	} else {
		snap.System = val
	}

	if ticks, err := s.cpu.Ticks(ctx); err != nil {
		s.log.Warn("collector", "name", "cpu", "error", err)
	} else {
		s.mu.Lock()
		snap.CPUPercent, s.baseline = cpu.ComputePercent(s.baseline, ticks)
		s.mu.Unlock()
	}

	if n, err := s.cpu.Cores(ctx); err != nil || n < 1 {
		s.log.Debug("collector", "name", "cpu_cores", "error", err, "fallback", runtime.NumCPU())
		snap.CPUNumCores = max(runtime.NumCPU(), 1)
	} else {
		snap.CPUNumCores = n
	}

	if val, err := s.memory.Collect(ctx); err != nil {
		s.log.Warn("collector", "name", "memory", "error", err)
	} else {
		snap.MemTotalMiB = val.TotalMiB()
		snap.MemFreeMiB = val.FreeMiB()
		snap.MemUsedMiB = val.UsedMiB()
		snap.SwapTotalMiB = val.SwapTotalMiB()
		snap.SwapFreeMiB = val.SwapFreeMiB()
	}

	if val, err := s.network.Collect(ctx); err != nil {
		s.log.Warn("collector", "name", "network", "error", err)
	} else {
		snap.NetRxBytes = val.RxBytes
		snap.NetTxBytes = val.TxBytes
	}

	if val, err := s.disk.Collect(ctx); err != nil {
		s.log.Warn("collector", "name", "disk", "error", err)
	} else {
		snap.DisksTotalKB = val.TotalKB
		snap.DisksAvailKB = val.AvailKB
	}

	if val, err := s.process.Processes(ctx); err != nil {
		s.log.Warn("collector", "name", "processes", "error", err)
	} else {
		snap.ProcessCount = val
	}

	if val, err := s.process.Connections(ctx); err != nil {
		s.log.Warn("collector", "name", "connections", "error", err)
	} else {
		snap.ConnectionCount = val
	}

	if load, err := s.system.LoadAvg(ctx); err != nil {
		s.log.Debug("collector", "name", "loadavg", "error", err)
	} else {
		s.log.Debug("load average", "load1", load.Load1, "load5", load.Load5, "load15", load.Load15, "running", load.Running, "tasks", load.Total)
	}

	return snap
}

// Host describes the machine for the startup log line.
func (s *Sampler) Host(ctx context.Context) system.HostInfo {
	info, err := s.system.Host(ctx)
	if err != nil {
		s.log.Debug("collector", "name", "host", "error", err)
	}
	return info
}
