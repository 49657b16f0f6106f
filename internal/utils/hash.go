package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// HashPath returns the hex SHA-256 of a file, or of a directory tree.
// For a tree, regular files are visited in sorted order and each one feeds
// its slash-separated relative path followed by its content. The digest
// depends only on relative names and bytes, never on where the tree lives.
func HashPath(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	switch {
	case info.Mode().IsRegular():
		if err := hashFile(h, path); err != nil {
			return "", err
		}
	case info.IsDir():
		files, err := regularFiles(path)
		if err != nil {
			return "", err
		}
		for _, rel := range files {
			io.WriteString(h, rel)
			if err := hashFile(h, filepath.Join(path, filepath.FromSlash(rel))); err != nil {
				return "", err
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func regularFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
