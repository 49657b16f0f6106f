package utils

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

var (
	osUserHomeDir = os.UserHomeDir
	execLookPath  = exec.LookPath
)

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" {
		if home, err := osUserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		home, err := osUserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// HomeDir returns the user's home directory or "" when unknown.
func HomeDir() string {
	home, err := osUserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func FormatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatPercent renders part/total as a percentage with one decimal.
func FormatPercent(part, total uint64) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// FormatAge formats a time.Time as a human-readable age string
// Examples: "5m", "3h", "7d", "2mo", "1y"
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	duration := time.Since(t)

	minutes := int(duration.Minutes())
	hours := int(duration.Hours())
	days := hours / 24
	months := days / 30
	years := days / 365

	switch {
	case hours < 1:
		if minutes < 1 {
			return "<1m"
		}
		return fmt.Sprintf("%dm", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	case days < 30:
		return fmt.Sprintf("%dd", days)
	case months < 12:
		return fmt.Sprintf("%dmo", months)
	default:
		return fmt.Sprintf("%dy", years)
	}
}

func PathExists(path string) bool {
	_, err := os.Lstat(ExpandPath(path))
	return err == nil
}

var CommandExists = func(cmd string) bool {
	_, err := execLookPath(cmd)
	return err == nil
}

// DirSizeWithCount sums the sizes of regular files under path.
// Unreadable entries are skipped.
func DirSizeWithCount(path string) (uint64, int64, error) {
	var size uint64
	var count int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		size += uint64(info.Size())
		count++
		return nil
	})
	return size, count, err
}

func DirSize(path string) (uint64, error) {
	size, _, err := DirSizeWithCount(path)
	return size, err
}

// PathSize returns the size of a file or the total size of a directory tree.
// A missing path has size 0.
func PathSize(path string) (uint64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if info.IsDir() {
		return DirSize(path)
	}
	if !info.Mode().IsRegular() {
		return 0, nil
	}
	return uint64(info.Size()), nil
}

// IsWithin reports whether path equals root or lies beneath it,
// comparing whole path components.
func IsWithin(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if path == root {
		return true
	}
	if root == string(filepath.Separator) {
		return filepath.IsAbs(path)
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

func GlobPaths(pattern string) ([]string, error) {
	return filepath.Glob(ExpandPath(pattern))
}
