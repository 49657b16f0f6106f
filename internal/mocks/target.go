package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RiPetitor/rCleaner/internal/backup"
	"github.com/RiPetitor/rCleaner/internal/types"
)

// MockTarget implements target.Target interface for testing.
type MockTarget struct {
	mock.Mock
}

func (m *MockTarget) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockTarget) Category() types.Category {
	args := m.Called()
	return args.Get(0).(types.Category)
}

func (m *MockTarget) Scan(ctx context.Context) ([]types.CleanupItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CleanupItem), args.Error(1)
}

func (m *MockTarget) Clean(items []types.CleanupItem, dryRun bool) (*types.CleanupResult, error) {
	args := m.Called(items, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CleanupResult), args.Error(1)
}

// MockBackuper implements target.Backuper interface for testing.
type MockBackuper struct {
	mock.Mock
}

func (m *MockBackuper) Create(items []types.CleanupItem) (*backup.Backup, error) {
	args := m.Called(items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backup.Backup), args.Error(1)
}
