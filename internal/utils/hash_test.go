package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func TestHashPath_File(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "x")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))

	sum, err := HashPath(p)
	require.NoError(t, err)
	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)
}

func TestHashPath_DirectoryIndependentOfLocation(t *testing.T) {
	files := map[string]string{
		"a.txt":         "alpha",
		"nested/b.txt":  "beta",
		"nested/c/d.db": "delta",
	}
	first := filepath.Join(t.TempDir(), "one")
	second := filepath.Join(t.TempDir(), "elsewhere", "two")
	writeTree(t, first, files)
	writeTree(t, second, files)

	h1, err := HashPath(first)
	require.NoError(t, err)
	h2, err := HashPath(second)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestHashPath_DirectoryChangesWithContentOrName(t *testing.T) {
	base := filepath.Join(t.TempDir(), "base")
	writeTree(t, base, map[string]string{"a.txt": "alpha"})
	h1, err := HashPath(base)
	require.NoError(t, err)

	renamed := filepath.Join(t.TempDir(), "renamed")
	writeTree(t, renamed, map[string]string{"b.txt": "alpha"})
	h2, err := HashPath(renamed)
	require.NoError(t, err)

	changed := filepath.Join(t.TempDir(), "changed")
	writeTree(t, changed, map[string]string{"a.txt": "alpha!"})
	h3, err := HashPath(changed)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestHashPath_Missing(t *testing.T) {
	_, err := HashPath(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCopyPath_TreeRoundTripKeepsChecksum(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	writeTree(t, src, map[string]string{
		"one.txt":          "1",
		"deep/two.txt":     "22",
		"deep/er/three.md": "333",
	})
	require.NoError(t, os.Symlink("one.txt", filepath.Join(src, "link")))

	dst := filepath.Join(t.TempDir(), "mirror", "src")
	require.NoError(t, CopyPath(src, dst))

	want, err := HashPath(src)
	require.NoError(t, err)
	got, err := HashPath(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	target, err := os.Readlink(filepath.Join(dst, "link"))
	require.NoError(t, err)
	assert.Equal(t, "one.txt", target)
}

func TestCopyPath_FileCreatesParents(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o600))

	dst := filepath.Join(t.TempDir(), "a", "b", "file.bin")
	require.NoError(t, CopyPath(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyPath_OverwritesExisting(t *testing.T) {
	src := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	dst := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(dst, []byte("old content"), 0o644))

	require.NoError(t, CopyPath(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"1.2GB", 1_200_000_000},
		{"500 MB", 500_000_000},
		{"12.3 kB", 12_300},
		{"8.0M", 8_000_000},
		{"1,5 GB", 1_500_000_000},
		{"42", 42},
		{"1 KiB", 1024},
		{"0B", 0},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "GB", "12 parsecs"} {
		_, err := ParseSize(bad)
		assert.Error(t, err, bad)
	}
}
