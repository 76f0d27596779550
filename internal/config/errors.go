package config

import "errors"

var (
	// ErrInvalidStorageConfigs indicates invalid snapshot storage settings
	// (for example, an empty snapshot path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrUnexpectedArguments is returned when positional arguments are
	// passed to a command that takes none.
	ErrUnexpectedArguments = errors.New("unexpected arguments")
)
