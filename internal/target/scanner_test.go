package target

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/RiPetitor/rCleaner/internal/mocks"
	"github.com/RiPetitor/rCleaner/internal/types"
)

type mockTarget struct {
	cat  types.Category
	name string
}

func newMockTarget(cat types.Category, name string) *mockTarget {
	return &mockTarget{cat: cat, name: name}
}

func (m *mockTarget) Name() string { return m.name }

func (m *mockTarget) Category() types.Category { return m.cat }

func (m *mockTarget) Scan(context.Context) ([]types.CleanupItem, error) {
	return nil, nil
}

func (m *mockTarget) Clean([]types.CleanupItem, bool) (*types.CleanupResult, error) {
	return types.NewCleanupResult(), nil
}

// --- NewRegistry Tests ---

func TestNewRegistry_ReturnsNonNil(t *testing.T) {
	r := NewRegistry()

	assert.NotNil(t, r)
	assert.Empty(t, r.targets)
}

// --- Register Tests ---

func TestRegister_UsesCategoryAsKey(t *testing.T) {
	r := NewRegistry()

	r.Register(newMockTarget(types.CategoryLogs, "logs"))

	_, exists := r.targets[types.CategoryLogs]
	assert.True(t, exists)
	assert.Equal(t, 1, r.Len())
}

func TestRegister_OverwritesExistingTarget(t *testing.T) {
	r := NewRegistry()

	r.Register(newMockTarget(types.CategoryCache, "first"))
	r.Register(newMockTarget(types.CategoryCache, "second"))

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "second", r.targets[types.CategoryCache].Name())
}

// --- Get Tests ---

func TestGet_ReturnsTarget_WhenExists(t *testing.T) {
	r := NewRegistry()
	r.Register(newMockTarget(types.CategoryTempFiles, "temp"))

	result, ok := r.Get(types.CategoryTempFiles)

	assert.True(t, ok)
	assert.Equal(t, "temp", result.Name())
}

func TestGet_ReturnsNilAndFalse_WhenNotExists(t *testing.T) {
	r := NewRegistry()

	result, ok := r.Get(types.CategoryOldKernels)

	assert.False(t, ok)
	assert.Nil(t, result)
}

// --- All Tests ---

func TestAll_ReturnsEmptySlice_WhenNoTargets(t *testing.T) {
	r := NewRegistry()

	result := r.All()

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestAll_FollowsCategoryOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(newMockTarget(types.CategoryOldKernels, "kernels"))
	r.Register(newMockTarget(types.CategoryCache, "cache"))
	r.Register(newMockTarget(types.CategoryLogs, "logs"))

	var names []string
	for _, tg := range r.All() {
		names = append(names, tg.Name())
	}

	assert.Equal(t, []string{"cache", "logs", "kernels"}, names)
}

// --- backupBeforeClean Tests ---

func TestBackupBeforeClean_SkippedOnDryRun(t *testing.T) {
	b := new(mocks.MockBackuper)

	err := backupBeforeClean(b, []types.CleanupItem{{ID: "x"}}, true)

	assert.NoError(t, err)
	b.AssertNotCalled(t, "Create", mock.Anything)
}

func TestBackupBeforeClean_PropagatesError(t *testing.T) {
	b := new(mocks.MockBackuper)
	b.On("Create", mock.Anything).Return(nil, errors.New("disk full"))

	err := backupBeforeClean(b, []types.CleanupItem{{ID: "x"}}, false)

	assert.EqualError(t, err, "disk full")
	b.AssertExpectations(t)
}

func TestBackupBeforeClean_NilBackuper(t *testing.T) {
	assert.NoError(t, backupBeforeClean(nil, []types.CleanupItem{{ID: "x"}}, false))
}
