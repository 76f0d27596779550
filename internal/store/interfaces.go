package store

import (
	"context"

	"github.com/MKhiriev/env-patcher/internal/snapshot"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/snapshot_storage_mock.go -package=mock

// SnapshotStorage loads and persists configuration snapshots.
type SnapshotStorage interface {
	// Load reads and parses the snapshot at path. It returns
	// ErrSnapshotNotFound when path does not name a regular file.
	Load(ctx context.Context, path string) (*snapshot.Array, error)
	// Save serializes arr and overwrites the file at path in full.
	Save(ctx context.Context, path string, arr *snapshot.Array) error
}
