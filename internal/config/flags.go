package config

import (
	"flag"
	"fmt"
	"io"
)

// ParseFlags parses all configuration flags from args (without the program
// name).
//
// Flags:
//
//	-f/-env-file path of the PHP configuration snapshot
//	-c/-config json or yaml file path with configs
//
// Both commands take no positional arguments; any left over are rejected.
func ParseFlags(args []string) (*StructuredConfig, error) {
	var envFile string
	var jsonConfigPath string

	fs := flag.NewFlagSet("redis-config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&envFile, "f", "", "Snapshot file path (default "+DefaultEnvFile+")")
	fs.StringVar(&envFile, "env-file", "", "Snapshot file path (alias)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedArguments, fs.Args())
	}

	return &StructuredConfig{
		Storage: Storage{
			EnvFile: envFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
