package storage

import (
	"github.com/bobmcallan/ratiolens/internal/common"
	"github.com/bobmcallan/ratiolens/internal/interfaces"
)

// Manager provides access to the storage areas backed by a single FileStore.
type Manager struct {
	store  *FileStore
	logger *common.Logger
}

// NewManager opens the file store at the configured path.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := NewFileStore(logger, config.Storage.Path)
	if err != nil {
		return nil, err
	}
	return &Manager{store: store, logger: logger}, nil
}

// EntityStorage returns the raw-data cache.
func (m *Manager) EntityStorage() interfaces.EntityStore {
	return m.store
}

// ReportStorage returns the report store.
func (m *Manager) ReportStorage() interfaces.ReportStore {
	return m.store
}

// Close releases storage resources. File-based storage holds no open
// handles between operations.
func (m *Manager) Close() error {
	return nil
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
