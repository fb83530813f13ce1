package disk

import (
	"bufio"
	"io"
	"strings"
)

// ParseMounts reads a /proc/mounts table. Octal escapes such as \040 in the
// device and mount point columns are decoded.
func ParseMounts(r io.Reader) ([]Mount, error) {
	var mounts []Mount

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}

		mounts = append(mounts, Mount{
			Device:     unescapeOctal(fields[0]),
			MountPoint: unescapeOctal(fields[1]),
			FSType:     fields[2],
		})
	}

	return mounts, scanner.Err()
}

func unescapeOctal(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}

	return b.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
