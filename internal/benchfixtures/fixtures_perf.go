//go:build perf

// Package benchfixtures builds synthetic directory trees for the perf-tagged
// benchmarks of sizing, hashing and backup copies.
package benchfixtures

import (
	"fmt"
	"os"
	"path/filepath"
)

type TreeSpec struct {
	Name  string
	Depth int
}

type Tree struct {
	Name  string
	Dir   string
	Depth int
	Files int
}

// PrepareTrees creates one tree per spec under $envVar, or under a fresh temp
// dir when the variable is empty. Existing trees are reused. The returned
// cleanup removes only trees it created in a temp dir.
func PrepareTrees(envVar, tempPrefix string, specs []TreeSpec, filesPerDir, fanout, fileSize int) ([]Tree, func(), error) {
	root := os.Getenv(envVar)
	ownRoot := root == ""
	if ownRoot {
		var err error
		root, err = os.MkdirTemp("", tempPrefix)
		if err != nil {
			return nil, func() {}, err
		}
	}

	cleanup := func() {
		if ownRoot {
			_ = os.RemoveAll(root)
		}
	}

	trees := make([]Tree, len(specs))
	for i, spec := range specs {
		dir := filepath.Join(root, spec.Name)
		trees[i] = Tree{Name: spec.Name, Dir: dir, Depth: spec.Depth}
		if _, err := os.Stat(dir); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			cleanup()
			return nil, func() {}, err
		}
		n, err := buildTree(dir, spec.Depth, filesPerDir, fanout, fileSize)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		trees[i].Files = n
	}

	return trees, cleanup, nil
}

func buildTree(root string, depth, filesPerDir, fanout, fileSize int) (int, error) {
	data := make([]byte, fileSize)
	files := 0
	var create func(path string, level int) error
	create = func(path string, level int) error {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return err
		}
		for i := 0; i < filesPerDir; i++ {
			data[0] = byte(i)
			name := filepath.Join(path, fmt.Sprintf("f%03d.cache", i))
			if err := os.WriteFile(name, data, 0o644); err != nil {
				return err
			}
			files++
		}
		if level >= depth {
			return nil
		}
		for i := 0; i < fanout; i++ {
			if err := create(filepath.Join(path, fmt.Sprintf("d%d", i)), level+1); err != nil {
				return err
			}
		}
		return nil
	}
	err := create(root, 1)
	return files, err
}
