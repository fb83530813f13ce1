package disk

import "strings"

// IsPhysical reports whether a mount source is a block device worth counting.
// Loop, ram and device-mapper nodes are left out.
func IsPhysical(device string) bool {
	if !strings.HasPrefix(device, "/dev/") {
		return false
	}

	name := strings.TrimPrefix(device, "/dev/")
	return !strings.HasPrefix(name, "loop") &&
		!strings.HasPrefix(name, "ram") &&
		!strings.HasPrefix(name, "dm-")
}
