package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RiPetitor/rCleaner/internal/backup"
	"github.com/RiPetitor/rCleaner/internal/cleaner"
	"github.com/RiPetitor/rCleaner/internal/config"
	"github.com/RiPetitor/rCleaner/internal/mocks"
	"github.com/RiPetitor/rCleaner/internal/scancache"
	"github.com/RiPetitor/rCleaner/internal/target"
	"github.com/RiPetitor/rCleaner/internal/types"
	"github.com/RiPetitor/rCleaner/internal/userconfig"
)

type testEnv struct {
	app    *App
	target *mocks.MockTarget
	out    *bytes.Buffer
	p      *printer
}

func scannedItems() []types.CleanupItem {
	a := types.NewItem("/tmp/a", "a", "/tmp/a", 100, types.CategoryTempFiles, types.FileSystemSource())
	b := types.NewItem("/tmp/b", "b", "/tmp/b", 50, types.CategoryTempFiles, types.FileSystemSource())
	blocked := types.NewItem("/tmp/c.log", "c.log", "/tmp/c.log", 10, types.CategoryTempFiles, types.FileSystemSource())
	blocked.Block("Blacklisted pattern: *.log")
	return []types.CleanupItem{a, b, blocked}
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}

	tg := new(mocks.MockTarget)
	tg.On("Category").Return(types.CategoryTempFiles)
	tg.On("Name").Return("Temp Files Cleaner")
	registry := target.NewRegistry()
	registry.Register(tg)

	store, err := backup.New(filepath.Join(t.TempDir(), "backups"), 0)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &testEnv{
		app: &App{
			Config:  cfg,
			Store:   store,
			Service: cleaner.NewService(registry, nil),
			Cache:   scancache.New(filepath.Join(t.TempDir(), "scan_cache.json")),
		},
		target: tg,
		out:    out,
		p:      newPrinter(out, out),
	}
}

func names(items []types.CleanupItem) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func cleanedItems(t *testing.T, m *mocks.MockTarget) []types.CleanupItem {
	t.Helper()
	for _, call := range m.Calls {
		if call.Method == "Clean" {
			return call.Arguments.Get(0).([]types.CleanupItem)
		}
	}
	t.Fatal("Clean was not called")
	return nil
}

// --- clean ---

func TestRunClean_DryRunSkipsPromptAndBlockedItems(t *testing.T) {
	env := newTestEnv(t, nil)
	env.target.On("Scan", mock.Anything).Return(scannedItems(), nil)
	env.target.On("Clean", mock.Anything, true).Return(&types.CleanupResult{CleanedItems: 2, FreedBytes: 150}, nil)

	report, err := runClean(context.Background(), env.app, cleanOptions{dryRun: true}, strings.NewReader(""), env.p)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, report.DryRun)
	assert.Equal(t, uint64(150), report.Result.FreedBytes)

	cleaned := cleanedItems(t, env.target)
	assert.Equal(t, []string{"a", "b"}, names(cleaned))
	assert.NotContains(t, env.out.String(), "[y/N]")
}

func TestRunClean_DeclinedConfirmation(t *testing.T) {
	env := newTestEnv(t, nil)
	env.target.On("Scan", mock.Anything).Return(scannedItems(), nil)

	report, err := runClean(context.Background(), env.app, cleanOptions{}, strings.NewReader("n\n"), env.p)

	require.NoError(t, err)
	assert.Nil(t, report)
	assert.Contains(t, env.out.String(), "Cancelled.")
	env.target.AssertNotCalled(t, "Clean", mock.Anything, mock.Anything)
}

func TestRunClean_ConfirmedRunCleans(t *testing.T) {
	env := newTestEnv(t, nil)
	env.target.On("Scan", mock.Anything).Return(scannedItems(), nil)
	env.target.On("Clean", mock.Anything, false).Return(&types.CleanupResult{CleanedItems: 2, FreedBytes: 150}, nil)

	report, err := runClean(context.Background(), env.app, cleanOptions{}, strings.NewReader("yes\n"), env.p)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 2, report.Result.CleanedItems)
	assert.Contains(t, env.out.String(), "Temp Files Cleaner")
}

func TestRunClean_AutoConfirmProfile(t *testing.T) {
	cfg, err := config.Default().WithLevel(config.LevelAggressive)
	require.NoError(t, err)
	require.True(t, cfg.CurrentProfile().AutoConfirm)

	env := newTestEnv(t, cfg)
	env.target.On("Scan", mock.Anything).Return(scannedItems(), nil)
	env.target.On("Clean", mock.Anything, false).Return(types.NewCleanupResult(), nil)

	report, err := runClean(context.Background(), env.app, cleanOptions{}, strings.NewReader(""), env.p)

	require.NoError(t, err)
	assert.NotNil(t, report)
	assert.NotContains(t, env.out.String(), "[y/N]")
}

func TestRunClean_CategoryFilter(t *testing.T) {
	env := newTestEnv(t, nil)
	env.target.On("Scan", mock.Anything).Return(scannedItems(), nil)

	report, err := runClean(context.Background(), env.app, cleanOptions{yes: true, categories: []string{"logs"}}, nil, env.p)

	require.NoError(t, err)
	assert.Nil(t, report)
	assert.Contains(t, env.out.String(), "Nothing to clean.")
}

func TestRunClean_UnknownCategory(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := runClean(context.Background(), env.app, cleanOptions{categories: []string{"bogus"}}, nil, env.p)

	assert.ErrorContains(t, err, "unknown category")
}

func stubUserConfig(t *testing.T, cfg *userconfig.UserConfig, err error) {
	t.Helper()
	original := loadUserConfig
	loadUserConfig = func() (*userconfig.UserConfig, error) { return cfg, err }
	t.Cleanup(func() { loadUserConfig = original })
}

func TestRunClean_ProfileWithoutSelection(t *testing.T) {
	stubUserConfig(t, &userconfig.UserConfig{}, nil)
	env := newTestEnv(t, nil)

	_, err := runClean(context.Background(), env.app, cleanOptions{profile: true}, nil, env.p)

	assert.ErrorIs(t, err, errNoProfile)
}

func TestRunClean_ProfileLoadError(t *testing.T) {
	stubUserConfig(t, nil, errors.New("bad yaml"))
	env := newTestEnv(t, nil)

	_, err := runClean(context.Background(), env.app, cleanOptions{profile: true}, nil, env.p)

	assert.ErrorContains(t, err, "bad yaml")
}

func TestRunClean_ProfileReusesSavedSelection(t *testing.T) {
	stubUserConfig(t, &userconfig.UserConfig{
		ExcludedPaths: map[string][]string{},
		LastSelection: []string{"/tmp/b", "/tmp/c.log"},
	}, nil)
	env := newTestEnv(t, nil)
	env.target.On("Scan", mock.Anything).Return(scannedItems(), nil)
	env.target.On("Clean", mock.Anything, false).Return(types.NewCleanupResult(), nil)

	_, err := runClean(context.Background(), env.app, cleanOptions{profile: true, yes: true}, nil, env.p)

	require.NoError(t, err)
	cleaned := cleanedItems(t, env.target)
	assert.Equal(t, []string{"b"}, names(cleaned))
}

// --- scan ---

func TestScanItems_CachedSkipsRescan(t *testing.T) {
	env := newTestEnv(t, nil)
	env.target.On("Scan", mock.Anything).Return(scannedItems(), nil).Once()

	first, fromCache, err := scanItems(context.Background(), env.app, true)
	require.NoError(t, err)
	assert.False(t, fromCache)

	second, fromCache, err := scanItems(context.Background(), env.app, true)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, names(first), names(second))
	env.target.AssertNumberOfCalls(t, "Scan", 1)
}

func TestPrintItems(t *testing.T) {
	env := newTestEnv(t, nil)

	printItems(env.p, scannedItems())

	out := env.out.String()
	assert.Contains(t, out, "TempFiles (3)")
	assert.Contains(t, out, "blocked: Blacklisted pattern: *.log")
	assert.Contains(t, out, "Cleanable: 150 B")
	assert.Contains(t, out, "Protected: 10 B")
}

// --- commands ---

func runCommand(t *testing.T, env *testEnv, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	originalInit := initLogger
	initLogger = func(bool) error { return nil }
	t.Cleanup(func() { initLogger = originalInit })

	opts := &rootOptions{newApp: func(cfg *config.Config) (*App, error) {
		env.app.Config = cfg
		return env.app, nil
	}}
	root := newRootCommand(opts)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_HelpWhenNotATerminal(t *testing.T) {
	original := isTerminal
	isTerminal = func(*os.File) bool { return false }
	t.Cleanup(func() { isTerminal = original })

	out, err := runCommand(t, newTestEnv(t, nil))

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "rollback")
}

func TestBackupCommands(t *testing.T) {
	env := newTestEnv(t, nil)

	out, err := runCommand(t, env, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No backups")

	src := filepath.Join(t.TempDir(), "victim.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	b, err := env.app.Store.Create([]types.CleanupItem{
		types.NewItem(src, "victim", src, 7, types.CategoryTempFiles, types.FileSystemSource()),
	})
	require.NoError(t, err)

	out, err = runCommand(t, env, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, b.ID)

	out, err = runCommand(t, env, "backup", "show", b.ID)
	require.NoError(t, err)
	assert.Contains(t, out, src)
	assert.Contains(t, out, "sha256")

	_, err = runCommand(t, env, "backup", "show", "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)

	out, err = runCommand(t, env, "backup", "delete", b.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+b.ID)
}

func TestRollbackCommand_RestoresDeletedFile(t *testing.T) {
	env := newTestEnv(t, nil)
	src := filepath.Join(t.TempDir(), "restore-me")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0o644))
	b, err := env.app.Store.Create([]types.CleanupItem{
		types.NewItem(src, "restore-me", src, 7, types.CategoryTempFiles, types.FileSystemSource()),
	})
	require.NoError(t, err)
	require.NoError(t, os.Remove(src))

	out, err := runCommand(t, env, "rollback", "--verify", b.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Restored 1 items")
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t, nil)
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := runCommand(t, env, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.FileExists(t, path)

	_, err = runCommand(t, env, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = runCommand(t, env, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)

	out, err = runCommand(t, env, "config", "show", "--config", path, "--level", "aggressive")
	require.NoError(t, err)
	assert.Contains(t, out, "level: aggressive")
}

func TestCleanCommand_DryRunPrintsReport(t *testing.T) {
	env := newTestEnv(t, nil)
	env.target.On("Scan", mock.Anything).Return(scannedItems(), nil)
	env.target.On("Clean", mock.Anything, true).Return(&types.CleanupResult{CleanedItems: 2, FreedBytes: 150}, nil)

	out, err := runCommand(t, env, "clean", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "Dry Run Report")
}
