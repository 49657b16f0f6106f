package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var sizeUnits = map[string]float64{
	"":    1,
	"b":   1,
	"k":   1000,
	"kb":  1000,
	"kib": 1024,
	"m":   1000 * 1000,
	"mb":  1000 * 1000,
	"mib": 1024 * 1024,
	"g":   1000 * 1000 * 1000,
	"gb":  1000 * 1000 * 1000,
	"gib": 1024 * 1024 * 1024,
	"t":   1000 * 1000 * 1000 * 1000,
	"tb":  1000 * 1000 * 1000 * 1000,
	"tib": 1024 * 1024 * 1024 * 1024,
}

// ParseSize parses human sizes as printed by docker, podman, flatpak and
// journalctl, e.g. "1.2GB", "500 MB", "12.3 kB", "8.0M".
func ParseSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	idx := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ','
	})
	number, unit := s, ""
	if idx >= 0 {
		number, unit = s[:idx], s[idx:]
	}
	number = strings.ReplaceAll(number, ",", ".")
	unit = strings.ToLower(strings.TrimSpace(unit))

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("parse size %q: %w", s, err)
	}
	mult, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("parse size %q: unknown unit %q", s, unit)
	}
	return uint64(math.Round(value * mult)), nil
}
