package system

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/joho/godotenv"
)

const UnknownOS = "Unknown"

// ParsePrettyName reads an os-release style table and returns PRETTY_NAME,
// or UnknownOS when the key is absent or empty.
func ParsePrettyName(r io.Reader) string {
	data, err := io.ReadAll(r)
	if err != nil {
		return UnknownOS
	}

	var name string
	if env, err := godotenv.Parse(bytes.NewReader(data)); err == nil {
		name = env["PRETTY_NAME"]
	} else {
		name = scanPrettyName(data)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return UnknownOS
	}
	return name
}

// scanPrettyName tolerates files godotenv refuses, such as vendor
// os-release files with stray lines.
func scanPrettyName(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		value, ok := strings.CutPrefix(line, "PRETTY_NAME=")
		if !ok {
			continue
		}
		return strings.Trim(value, `"'`)
	}
	return ""
}
