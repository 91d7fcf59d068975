package contract

import (
	"context"

	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/stretchr/testify/mock"
)

// MockCommitSource is a mock implementation of CommitSource for testing.
type MockCommitSource struct {
	mock.Mock
}

var _ CommitSource = &MockCommitSource{} // Compile-time check

// Name implements the CommitSource interface.
func (m *MockCommitSource) Name() string {
	return m.Called().String(0)
}

// Connect implements the CommitSource interface.
func (m *MockCommitSource) Connect(ctx context.Context) (schema.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.Identity), args.Error(1)
}

// SearchCommits implements the CommitSource interface.
func (m *MockCommitSource) SearchCommits(ctx context.Context, year int) ([]schema.CommitEvent, error) {
	args := m.Called(ctx, year)
	events, _ := args.Get(0).([]schema.CommitEvent)
	return events, args.Error(1)
}

// CommitDetail implements the CommitSource interface.
func (m *MockCommitSource) CommitDetail(ctx context.Context, ev schema.CommitEvent) (schema.CommitDetail, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(schema.CommitDetail), args.Error(1)
}

// ProjectLanguages implements the CommitSource interface.
func (m *MockCommitSource) ProjectLanguages(ctx context.Context, project string) (schema.LanguageWeights, error) {
	args := m.Called(ctx, project)
	langs, _ := args.Get(0).(schema.LanguageWeights)
	return langs, args.Error(1)
}

// MockPushSource is a mock implementation of PushSource for testing.
type MockPushSource struct {
	mock.Mock
}

var _ PushSource = &MockPushSource{} // Compile-time check

// Name implements the PushSource interface.
func (m *MockPushSource) Name() string {
	return m.Called().String(0)
}

// Connect implements the PushSource interface.
func (m *MockPushSource) Connect(ctx context.Context) (schema.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.Identity), args.Error(1)
}

// PushEvents implements the PushSource interface.
func (m *MockPushSource) PushEvents(ctx context.Context, year int) ([]schema.PushEvent, error) {
	args := m.Called(ctx, year)
	events, _ := args.Get(0).([]schema.PushEvent)
	return events, args.Error(1)
}

// ProjectLanguages implements the PushSource interface.
func (m *MockPushSource) ProjectLanguages(ctx context.Context, project string) (schema.LanguageWeights, error) {
	args := m.Called(ctx, project)
	langs, _ := args.Get(0).(schema.LanguageWeights)
	return langs, args.Error(1)
}

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

var _ Provider = &MockProvider{} // Compile-time check

// Name implements the Provider interface.
func (m *MockProvider) Name() string {
	return m.Called().String(0)
}

// Connect implements the Provider interface.
func (m *MockProvider) Connect(ctx context.Context) (schema.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.Identity), args.Error(1)
}

// YearStats implements the Provider interface.
func (m *MockProvider) YearStats(ctx context.Context, year int) (*schema.Stats, error) {
	args := m.Called(ctx, year)
	stats, _ := args.Get(0).(*schema.Stats)
	return stats, args.Error(1)
}
