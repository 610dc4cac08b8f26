package iocache

import (
	"context"

	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
	"github.com/stretchr/testify/mock"
)

// MockContributorStore is a mock implementation of ContributorStore for testing.
type MockContributorStore struct {
	mock.Mock
}

var _ contract.ContributorStore = &MockContributorStore{} // Compile-time check

// ReplaceSnapshot implements the ContributorStore interface.
func (m *MockContributorStore) ReplaceSnapshot(ctx context.Context, snap schema.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

// CountAuthors implements the ContributorStore interface.
func (m *MockContributorStore) CountAuthors(ctx context.Context, repo, branch string) (int, error) {
	args := m.Called(ctx, repo, branch)
	return args.Int(0), args.Error(1)
}

// ListAuthors implements the ContributorStore interface.
func (m *MockContributorStore) ListAuthors(ctx context.Context, repo, branch string, offset, limit int) ([]schema.AuthorStats, error) {
	args := m.Called(ctx, repo, branch, offset, limit)
	authors, _ := args.Get(0).([]schema.AuthorStats)
	return authors, args.Error(1)
}

// AllAuthors implements the ContributorStore interface.
func (m *MockContributorStore) AllAuthors(ctx context.Context, repo, branch string) ([]schema.AuthorStats, error) {
	args := m.Called(ctx, repo, branch)
	authors, _ := args.Get(0).([]schema.AuthorStats)
	return authors, args.Error(1)
}

// GetAuthor implements the ContributorStore interface.
func (m *MockContributorStore) GetAuthor(ctx context.Context, repo, branch string, id int64) (schema.AuthorStats, error) {
	args := m.Called(ctx, repo, branch, id)
	return args.Get(0).(schema.AuthorStats), args.Error(1)
}

// DefaultBranch implements the ContributorStore interface.
func (m *MockContributorStore) DefaultBranch(ctx context.Context, repo string) (string, error) {
	args := m.Called(ctx, repo)
	return args.String(0), args.Error(1)
}

// HasSnapshot implements the ContributorStore interface.
func (m *MockContributorStore) HasSnapshot(ctx context.Context, repo, branch string) (bool, error) {
	args := m.Called(ctx, repo, branch)
	return args.Bool(0), args.Error(1)
}

// ClearRepo implements the ContributorStore interface.
func (m *MockContributorStore) ClearRepo(ctx context.Context, repo string) error {
	args := m.Called(ctx, repo)
	return args.Error(0)
}

// GetStatus implements the ContributorStore interface.
func (m *MockContributorStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the ContributorStore interface.
func (m *MockContributorStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
