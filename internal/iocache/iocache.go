// Package iocache holds the database-backed stores: the activity cache for
// provider responses and the export store for yearly snapshots.
package iocache

import (
	"sync"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
)

// CacheStoreManager manages the activity and export stores.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	activity     contract.CacheStore
	export       contract.ExportStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetActivityStore returns the activity CacheStore.
func (mgr *CacheStoreManager) GetActivityStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.activity
}

// GetExportStore returns the snapshot ExportStore.
func (mgr *CacheStoreManager) GetExportStore() contract.ExportStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.export
}
