package iocache

import (
	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetActivityStore implements the CacheManager interface.
func (m *MockCacheManager) GetActivityStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetExportStore implements the CacheManager interface.
func (m *MockCacheManager) GetExportStore() contract.ExportStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ExportStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockExportStore is a mock implementation of ExportStore for testing.
type MockExportStore struct {
	mock.Mock
}

var _ contract.ExportStore = &MockExportStore{} // Compile-time check

// SaveSnapshot implements the ExportStore interface.
func (m *MockExportStore) SaveSnapshot(year int, providers []string, stats *schema.Stats) error {
	args := m.Called(year, providers, stats)
	return args.Error(0)
}

// GetSnapshot implements the ExportStore interface.
func (m *MockExportStore) GetSnapshot(year int) (schema.Snapshot, error) {
	args := m.Called(year)
	return args.Get(0).(schema.Snapshot), args.Error(1)
}

// GetStatus implements the ExportStore interface.
func (m *MockExportStore) GetStatus() (schema.ExportStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ExportStatus), args.Error(1)
}

// Close implements the ExportStore interface.
func (m *MockExportStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
