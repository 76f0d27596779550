package store

import "github.com/spf13/afero"

// Storages groups the storage implementations used by the services.
type Storages struct {
	SnapshotStorage SnapshotStorage
}

// NewStorages builds the storages on top of fs. Production code passes
// afero.NewOsFs().
func NewStorages(fs afero.Fs) *Storages {
	return &Storages{
		SnapshotStorage: NewSnapshotFileStorage(fs),
	}
}
