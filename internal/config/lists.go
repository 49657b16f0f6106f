package config

import (
	"bufio"
	"os"
	"strings"

	"github.com/RiPetitor/rCleaner/internal/types"
)

// LoadList reads a whitelist or blacklist file: one entry per line,
// blank lines and lines starting with '#' are ignored.
func LoadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewError(types.KindNotFound, "load list "+path, err)
		}
		return nil, types.NewError(types.KindIO, "load list "+path, err)
	}
	return ParseList(string(data)), nil
}

func ParseList(content string) []string {
	var entries []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// SaveList writes entries one per line with a trailing newline.
func SaveList(path string, entries []string) error {
	var b strings.Builder
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		b.WriteString(e)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return types.NewError(types.KindIO, "save list "+path, err)
	}
	return nil
}

// LoadWithLists loads the config at path (or the default when absent) and
// merges the optional whitelist/blacklist files next to it.
func LoadWithLists(path, whitelistPath, blacklistPath string) (*Config, error) {
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, err
	}

	whitelist, err := loadOptionalList(whitelistPath)
	if err != nil {
		return nil, err
	}
	blacklist, err := loadOptionalList(blacklistPath)
	if err != nil {
		return nil, err
	}
	if len(whitelist) == 0 && len(blacklist) == 0 {
		return cfg, nil
	}
	return cfg.MergeLists(whitelist, blacklist), nil
}

func loadOptionalList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	entries, err := LoadList(path)
	if err != nil {
		if kind, _ := types.KindOf(err); kind == types.KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}
