package store

import "errors"

// Sentinel errors returned by [SnapshotStorage] implementations. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrSnapshotNotFound is returned when the snapshot path does not exist
	// or is not a regular file. Commands treat it as a silent no-op.
	ErrSnapshotNotFound = errors.New("snapshot file not found")

	// ErrReadingSnapshot is returned when the snapshot exists but cannot be
	// read.
	ErrReadingSnapshot = errors.New("error reading snapshot")

	// ErrParsingSnapshot is returned when the snapshot content is not a
	// well-formed array literal.
	ErrParsingSnapshot = errors.New("error parsing snapshot")

	// ErrWritingSnapshot is returned when the serialized snapshot cannot be
	// written back.
	ErrWritingSnapshot = errors.New("error writing snapshot")
)
