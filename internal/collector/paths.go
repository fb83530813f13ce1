// Package collector holds what the host readers have in common.
package collector

import (
	"os"
	"path/filepath"
)

const (
	DefaultProcRoot = "/proc"
	DefaultEtcRoot  = "/etc"
)

// Paths locates the pseudo-filesystems the readers parse. Tests point it at
// fixture trees; containers point it at the host's bind mounts.
type Paths struct {
	Proc string
	Etc  string
}

func DefaultPaths() Paths {
	return Paths{
		Proc: envOr("HOST_PROC", DefaultProcRoot),
		Etc:  envOr("HOST_ETC", DefaultEtcRoot),
	}
}

func (p Paths) ProcFile(elem ...string) string {
	return filepath.Join(append([]string{orDefault(p.Proc, DefaultProcRoot)}, elem...)...)
}

func (p Paths) EtcFile(elem ...string) string {
	return filepath.Join(append([]string{orDefault(p.Etc, DefaultEtcRoot)}, elem...)...)
}

func envOr(key, fallback string) string {
	return orDefault(os.Getenv(key), fallback)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
