// Package config holds the immutable configuration snapshot passed to the
// safety checker, the backup store and the targets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/RiPetitor/rCleaner/internal/types"
)

const (
	LevelSafe       = "safe"
	LevelAggressive = "aggressive"

	appDir = "rcleaner"
)

var (
	validate      = validator.New()
	osUserHomeDir = os.UserHomeDir
	osGetenv      = os.Getenv
)

type Config struct {
	Safety   SafetyConfig   `yaml:"safety"`
	Profiles ProfilesConfig `yaml:"profiles"`
	Rules    RulesConfig    `yaml:"rules"`
}

type SafetyConfig struct {
	Enabled            bool   `yaml:"enabled"`
	OnlyRootCanDisable bool   `yaml:"only_root_can_disable"`
	Level              string `yaml:"level" validate:"required,oneof=safe aggressive"`
}

type ProfilesConfig struct {
	Safe       ProfileConfig `yaml:"safe"`
	Aggressive ProfileConfig `yaml:"aggressive"`
}

type ProfileConfig struct {
	AutoConfirm           bool `yaml:"auto_confirm"`
	KeepRecentKernels     int  `yaml:"keep_recent_kernels" validate:"min=1"`
	KeepRecentDeployments int  `yaml:"keep_recent_deployments" validate:"min=0"`
	// MaxBackupSizeGB of 0 disables the backup capacity limit.
	MaxBackupSizeGB int `yaml:"max_backup_size_gb" validate:"min=0"`
}

type RulesConfig struct {
	Whitelist WhitelistConfig `yaml:"whitelist"`
	Blacklist BlacklistConfig `yaml:"blacklist"`
}

type WhitelistConfig struct {
	Paths []string `yaml:"paths"`
}

type BlacklistConfig struct {
	Patterns []string `yaml:"patterns"`
}

func Default() *Config {
	return &Config{
		Safety: SafetyConfig{
			Enabled:            true,
			OnlyRootCanDisable: true,
			Level:              LevelSafe,
		},
		Profiles: ProfilesConfig{
			Safe: ProfileConfig{
				AutoConfirm:           false,
				KeepRecentKernels:     2,
				KeepRecentDeployments: 2,
				MaxBackupSizeGB:       10,
			},
			Aggressive: ProfileConfig{
				AutoConfirm:           true,
				KeepRecentKernels:     1,
				KeepRecentDeployments: 1,
				MaxBackupSizeGB:       5,
			},
		},
		Rules: RulesConfig{
			Whitelist: WhitelistConfig{Paths: []string{"~/.config", "~/Documents", "~/Projects"}},
			Blacklist: BlacklistConfig{Patterns: []string{"*.tmp", "*.log"}},
		},
	}
}

// Load reads and validates a YAML config file. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewError(types.KindNotFound, "load config "+path, err)
		}
		return nil, types.NewError(types.KindIO, "load config "+path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, types.NewError(types.KindParse, "parse config "+path, err)
	}
	cfg.Safety.Level = strings.ToLower(strings.TrimSpace(cfg.Safety.Level))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault returns the default config when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, types.ErrNotFound) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return types.NewError(types.KindConfig, "validate", err)
	}
	return nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return types.NewError(types.KindIO, "save config", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return types.NewError(types.KindSerialization, "save config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return types.NewError(types.KindIO, "save config", err)
	}
	return nil
}

// CurrentProfile returns the profile selected by safety.level.
func (c *Config) CurrentProfile() ProfileConfig {
	if strings.EqualFold(c.Safety.Level, LevelAggressive) {
		return c.Profiles.Aggressive
	}
	return c.Profiles.Safe
}

// MaxBackupBytes is the backup budget of the current profile; 0 means unbounded.
func (c *Config) MaxBackupBytes() uint64 {
	gb := c.CurrentProfile().MaxBackupSizeGB
	if gb <= 0 {
		return 0
	}
	return uint64(gb) * 1024 * 1024 * 1024
}

// WithLevel returns a copy with a different safety level.
func (c *Config) WithLevel(level string) (*Config, error) {
	next := c.clone()
	next.Safety.Level = strings.ToLower(level)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// MergeLists returns a copy whose rules also contain the given entries.
// Duplicates are dropped and order is preserved.
func (c *Config) MergeLists(whitelist, blacklist []string) *Config {
	next := c.clone()
	next.Rules.Whitelist.Paths = appendUnique(next.Rules.Whitelist.Paths, whitelist)
	next.Rules.Blacklist.Patterns = appendUnique(next.Rules.Blacklist.Patterns, blacklist)
	return next
}

func (c *Config) clone() *Config {
	next := *c
	next.Rules.Whitelist.Paths = append([]string(nil), c.Rules.Whitelist.Paths...)
	next.Rules.Blacklist.Patterns = append([]string(nil), c.Rules.Blacklist.Patterns...)
	return &next
}

func appendUnique(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if seen[s] {
			continue
		}
		seen[s] = true
		dst = append(dst, s)
	}
	return dst
}

func homeDir() string {
	if home, err := osUserHomeDir(); err == nil {
		return home
	}
	return "."
}

// Dir is ~/.config/rcleaner.
func Dir() string {
	return filepath.Join(homeDir(), ".config", appDir)
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func WhitelistPath() string {
	return filepath.Join(Dir(), "whitelist")
}

func BlacklistPath() string {
	return filepath.Join(Dir(), "blacklist")
}

// DefaultBackupDir is $XDG_DATA_HOME/rcleaner/backups, falling back to
// ~/.local/share/rcleaner/backups.
func DefaultBackupDir() string {
	if xdg := osGetenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir, "backups")
	}
	return filepath.Join(homeDir(), ".local", "share", appDir, "backups")
}

// DefaultCacheDir is $XDG_CACHE_HOME/rcleaner, falling back to ~/.cache/rcleaner.
func DefaultCacheDir() string {
	if xdg := osGetenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}
	return filepath.Join(homeDir(), ".cache", appDir)
}

func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(data)
}
