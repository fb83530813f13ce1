// Package identity
package identity

import (
	"os"
	"path/filepath"
	"sync"

	"kunlun/internal/logger"
)

// Resolver resolves the machine id once per process. If cachePath is set, a
// generated id is written there and read back on later runs so the agent
// keeps one identity on hosts without a machine-id.
type Resolver struct {
	files     []string
	cachePath string
	log       logger.Logger

	once sync.Once
	id   string
}

func NewResolver(files []string, cachePath string, log logger.Logger) *Resolver {
	return &Resolver{files: files, cachePath: cachePath, log: log}
}

func (r *Resolver) MachineID() string {
	r.once.Do(r.resolve)
	return r.id
}

func (r *Resolver) resolve() {
	files := r.files
	if r.cachePath != "" {
		files = append(append([]string(nil), files...), r.cachePath)
	}

	id, generated := Resolve(files)
	r.id = id

	if !generated {
		return
	}

	r.log.Warn("no machine id found, using a generated one", "machine_id", id, "searched", files)

	if r.cachePath == "" {
		return
	}
	if err := persist(r.cachePath, id); err != nil {
		r.log.Warn("failed to persist generated machine id", "path", r.cachePath, "error", err)
		return
	}
	r.log.Info("generated machine id persisted", "path", r.cachePath)
}

func persist(path, id string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(id+"\n"), 0o600)
}
