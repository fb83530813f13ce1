package identity

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const idLength = 32

// DefaultFiles are the systemd and D-Bus machine-id locations, in lookup order.
func DefaultFiles(etcRoot string) []string {
	if etcRoot == "" {
		etcRoot = "/etc"
	}
	return []string{
		filepath.Join(etcRoot, "machine-id"),
		"/var/lib/dbus/machine-id",
	}
}

// Resolve returns the first well-formed machine id among files. When none is
// usable it returns a freshly generated id and generated is true.
func Resolve(files []string) (id string, generated bool) {
	for _, path := range files {
		if id, ok := readID(path); ok {
			return id, false
		}
	}
	return Generate(), true
}

// Generate returns a random 32 character lowercase hex id.
func Generate() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func readID(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", false
	}

	id := strings.TrimRight(scanner.Text(), "\r\n")
	if len(id) != idLength {
		return "", false
	}
	return id, true
}
