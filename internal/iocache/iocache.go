// Package iocache persists contributor snapshots in a SQL database.
package iocache

import (
	"sync"

	"github.com/huangsam/impact/internal/contract"
)

// StoreManager owns the ContributorStore used by the commands.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	contributors contract.ContributorStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetContributorStore returns the contributor store.
func (mgr *StoreManager) GetContributorStore() contract.ContributorStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.contributors
}
