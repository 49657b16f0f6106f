package userconfig

import (
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/RiPetitor/rCleaner/internal/config"
	"github.com/RiPetitor/rCleaner/internal/types"
)

const fileName = "selection.yaml"

// configDir is swapped in tests.
var configDir = config.Dir

// UserConfig stores operator preferences that outlive a single run.
type UserConfig struct {
	// ExcludedPaths maps a category label to paths the operator never wants selected
	ExcludedPaths map[string][]string `yaml:"excluded_paths,omitempty"`
	// LastSelection stores the item IDs selected in the last clean
	LastSelection []string `yaml:"last_selection,omitempty"`
}

func newUserConfig() *UserConfig {
	return &UserConfig{ExcludedPaths: make(map[string][]string)}
}

func (c *UserConfig) SetLastSelection(ids []string) {
	c.LastSelection = ids
}

func (c *UserConfig) GetLastSelection() []string {
	return c.LastSelection
}

func (c *UserConfig) HasLastSelection() bool {
	return len(c.LastSelection) > 0
}

// RememberSelection records the IDs of the selected items.
func (c *UserConfig) RememberSelection(items []types.CleanupItem) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Selected {
			ids = append(ids, item.ID)
		}
	}
	c.LastSelection = ids
}

// ApplySelection marks items from the last selection as selected, leaving
// blocked and excluded items untouched. It returns how many were selected.
func (c *UserConfig) ApplySelection(items []types.CleanupItem) int {
	n := 0
	for i := range items {
		item := &items[i]
		if !item.CanClean || c.IsExcluded(item.Category.String(), item.Path) {
			continue
		}
		if slices.Contains(c.LastSelection, item.ID) {
			item.Selected = true
			n++
		}
	}
	return n
}

func path() string {
	return filepath.Join(configDir(), fileName)
}

// Load loads the user config, returning an empty one when none was saved.
func Load() (*UserConfig, error) {
	data, err := os.ReadFile(path())
	if err != nil {
		if os.IsNotExist(err) {
			return newUserConfig(), nil
		}
		return nil, types.NewError(types.KindIO, "read user config", err)
	}

	var cfg UserConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, types.NewError(types.KindParse, "parse user config", err)
	}
	if cfg.ExcludedPaths == nil {
		cfg.ExcludedPaths = make(map[string][]string)
	}
	return &cfg, nil
}

func (c *UserConfig) Save() error {
	p := path()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return types.NewError(types.KindIO, "create config dir", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return types.NewError(types.KindSerialization, "encode user config", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return types.NewError(types.KindIO, "write user config", err)
	}
	return nil
}

// SetExcludedPaths sets excluded paths for a category
func (c *UserConfig) SetExcludedPaths(category string, paths []string) {
	if len(paths) == 0 {
		delete(c.ExcludedPaths, category)
	} else {
		c.ExcludedPaths[category] = paths
	}
}

func (c *UserConfig) GetExcludedPaths(category string) []string {
	return c.ExcludedPaths[category]
}

// IsExcluded checks if a path is excluded for a category
func (c *UserConfig) IsExcluded(category, path string) bool {
	if path == "" {
		return false
	}
	return slices.Contains(c.ExcludedPaths[category], path)
}
