package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Version is set via ldflags: go build -ldflags "-X github.com/RiPetitor/rCleaner/internal/version.Version=1.0.0"
var Version = "dev"

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("rcleaner %s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}

// IsNewer reports whether latest is newer than current. A leading "v" is ignored.
func IsNewer(latest, current string) bool {
	return Compare(strings.TrimPrefix(latest, "v"), strings.TrimPrefix(current, "v")) > 0
}

// Compare orders version strings naturally: digit runs compare as numbers,
// everything else byte-wise. "6.10" sorts after "6.9".
func Compare(a, b string) int {
	for a != "" && b != "" {
		ra, restA := run(a)
		rb, restB := run(b)
		if c := compareRun(ra, rb); c != 0 {
			return c
		}
		a, b = restA, restB
	}
	switch {
	case a == b:
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// run splits off the leading digit or non-digit run of s.
func run(s string) (string, string) {
	digits := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

func compareRun(a, b string) int {
	if isDigit(a[0]) && isDigit(b[0]) {
		a = strings.TrimLeft(a, "0")
		b = strings.TrimLeft(b, "0")
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(a, b)
}
