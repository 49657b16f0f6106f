package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RiPetitor/rCleaner/internal/pkgmgr"
)

// MockManager implements pkgmgr.Manager interface for testing.
type MockManager struct {
	mock.Mock
}

func (m *MockManager) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockManager) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockManager) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockManager) ListInstalled(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockManager) CheckDependencies(ctx context.Context, pkg string) ([]string, error) {
	args := m.Called(ctx, pkg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockManager) RemovePackages(ctx context.Context, names []string, dryRun bool) error {
	args := m.Called(ctx, names, dryRun)
	return args.Error(0)
}

// MockOrphanManager is a MockManager that also lists orphans.
type MockOrphanManager struct {
	MockManager
}

func (m *MockOrphanManager) Orphans(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockKernelManager is a MockManager that also lists kernel packages.
type MockKernelManager struct {
	MockManager
}

func (m *MockKernelManager) Kernels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var (
	_ pkgmgr.Manager      = (*MockManager)(nil)
	_ pkgmgr.OrphanLister = (*MockOrphanManager)(nil)
	_ pkgmgr.KernelLister = (*MockKernelManager)(nil)
)
