package disk

import "context"

type Mount struct {
	Device     string
	MountPoint string
	FSType     string
}

type Usage struct {
	TotalBytes uint64
	AvailBytes uint64
}

// Totals are summed over every counted filesystem, in KiB.
type Totals struct {
	TotalKB uint64
	AvailKB uint64
	Mounts  int
}

// UsageFunc stats the filesystem mounted at path. Available space is what an
// unprivileged user could still allocate.
type UsageFunc func(ctx context.Context, path string) (Usage, error)
