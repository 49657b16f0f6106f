package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	origHome := osUserHomeDir
	osUserHomeDir = func() (string, error) { return "/home/tester", nil }
	defer func() { osUserHomeDir = origHome }()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", "/home/tester/test"},
		{"~", "/home/tester"},
		{"~/", "/home/tester"},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~other/path", "~other/path"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExpandPath(tt.input), "ExpandPath(%q)", tt.input)
	}
}

func TestExpandPath_HomeError(t *testing.T) {
	origHome := osUserHomeDir
	osUserHomeDir = func() (string, error) { return "", errors.New("no home") }
	defer func() { osUserHomeDir = origHome }()

	assert.Equal(t, "~/x", ExpandPath("~/x"))
	assert.Equal(t, "", HomeDir())
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1572864, "1.5 MB"},
		{1073741824, "1.0 GB"},
		{1610612736, "1.5 GB"},
		{1099511627776, "1.0 TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatSize(tt.bytes))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.0%", FormatPercent(5, 0))
	assert.Equal(t, "50.0%", FormatPercent(5, 10))
	assert.Equal(t, "33.3%", FormatPercent(1, 3))
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, PathExists(dir))
	assert.False(t, PathExists(filepath.Join(dir, "missing")))
}

func TestCommandExists(t *testing.T) {
	orig := execLookPath
	defer func() { execLookPath = orig }()

	execLookPath = func(file string) (string, error) {
		if file == "apt-get" {
			return "/usr/bin/apt-get", nil
		}
		return "", errors.New("not found")
	}

	assert.True(t, CommandExists("apt-get"))
	assert.False(t, CommandExists("pacman"))
}

func TestDirSizeWithCount(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 200), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "a"), filepath.Join(dir, "link")))

	size, count, err := DirSizeWithCount(dir)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), size)
	assert.Equal(t, int64(2), count)
}

func TestPathSize(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, make([]byte, 1024), 0o644))

	size, err := PathSize(file)
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), size)

	size, err = PathSize(dir)
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), size)

	size, err = PathSize(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		path, root string
		want       bool
	}{
		{"/tmp/a", "/tmp/a", true},
		{"/tmp/a/b", "/tmp/a", true},
		{"/tmp/ab", "/tmp/a", false},
		{"/tmp/a/", "/tmp/a", true},
		{"/etc", "/", true},
		{"/usr/bin/ls", "/usr/bin", true},
		{"/usr/binary", "/usr/bin", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWithin(tt.path, tt.root), "IsWithin(%q, %q)", tt.path, tt.root)
	}
}

func TestGlobPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	matches, err := GlobPaths(filepath.Join(dir, "*.txt"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestIsRoot(t *testing.T) {
	orig := geteuid
	defer func() { geteuid = orig }()

	geteuid = func() int { return 0 }
	assert.True(t, IsRoot())

	geteuid = func() int { return 1000 }
	assert.False(t, IsRoot())
}

func TestDiskFree(t *testing.T) {
	orig := diskUsage
	defer func() { diskUsage = orig }()

	diskUsage = func(path string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Path: path, Total: 100, Used: 40, Free: 60}, nil
	}

	free, err := DiskFree("/")
	require.NoError(t, err)
	assert.Equal(t, uint64(60), free)

	total, used, err := DiskUsage("/")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), total)
	assert.Equal(t, uint64(40), used)

	diskUsage = func(string) (*disk.UsageStat, error) { return nil, errors.New("statfs failed") }
	_, err = DiskFree("/")
	assert.Error(t, err)
}
