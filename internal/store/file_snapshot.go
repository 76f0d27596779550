package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/MKhiriev/env-patcher/internal/snapshot"
	"github.com/spf13/afero"
)

const defaultSnapshotPerm os.FileMode = 0o644

// snapshotFileStorage is the default implementation of [SnapshotStorage].
// It reads and writes PHP snapshot files on an afero filesystem, so the same
// code runs against the real disk and an in-memory filesystem in tests.
//
// Writes truncate and rewrite the file in place; there is no temporary file
// and no rename.
type snapshotFileStorage struct {
	fs afero.Fs
}

// NewSnapshotFileStorage constructs a new [SnapshotStorage] backed by fs.
func NewSnapshotFileStorage(fs afero.Fs) SnapshotStorage {
	return &snapshotFileStorage{fs: fs}
}

// Load reads the snapshot at path and parses it.
//
// Returns ErrSnapshotNotFound when path is missing or names something other
// than a regular file, an error wrapping ErrReadingSnapshot when the file
// cannot be read, and an error wrapping ErrParsingSnapshot (and the
// underlying *snapshot.SyntaxError) when the content is malformed.
func (s *snapshotFileStorage) Load(ctx context.Context, path string) (*snapshot.Array, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrReadingSnapshot, err)
	}
	if !info.Mode().IsRegular() {
		return nil, ErrSnapshotNotFound
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingSnapshot, err)
	}

	arr, err := snapshot.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParsingSnapshot, path, err)
	}

	return arr, nil
}

// Save writes arr to path as "<?php return <var_export>;", keeping the
// permissions of an existing file.
func (s *snapshotFileStorage) Save(ctx context.Context, path string, arr *snapshot.Array) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	perm := defaultSnapshotPerm
	if info, err := s.fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := afero.WriteFile(s.fs, path, snapshot.File(arr), perm); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingSnapshot, err)
	}

	return nil
}
