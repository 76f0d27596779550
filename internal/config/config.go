// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// DefaultEnvFile is the snapshot location relative to the application root.
const DefaultEnvFile = "app/etc/env.php"

// StructuredConfig is the top-level configuration container for the
// redis config patcher. It is populated by merging values from environment
// variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix:  prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:        direct environment variable name for scalar fields.
//   - envDefault: value used when the variable is absent.
type StructuredConfig struct {
	// Storage holds the location of the configuration snapshot.
	Storage Storage `json:"storage" yaml:"storage"`

	// Redis holds the cache and session backend inputs used by
	// set-redis-config.
	Redis Redis `json:"redis" yaml:"redis"`

	// JSONFilePath is the optional path to a JSON or YAML configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG" json:"-" yaml:"-"`
}

// Storage holds the snapshot file settings.
type Storage struct {
	// EnvFile is the path of the PHP configuration snapshot to patch.
	// Env: ENV_FILE
	EnvFile string `env:"ENV_FILE" envDefault:"app/etc/env.php" json:"env_file" yaml:"env_file"`
}

// Redis groups the three independently gated settings groups.
//
// Each group has a Server field that acts as its gate: a nil Server means the
// gate variable is absent and the group is skipped. An empty, non-nil Server
// still enables the group.
type Redis struct {
	DefaultCache DefaultCache `envPrefix:"DEFAULT_CACHE_REDIS_" json:"default_cache" yaml:"default_cache"`
	PageCache    PageCache    `envPrefix:"PAGE_CACHE_REDIS_" json:"page_cache" yaml:"page_cache"`
	Session      Session      `envPrefix:"SESSION_REDIS_" json:"session" yaml:"session"`
}

// DefaultCache holds the default cache frontend backend options.
type DefaultCache struct {
	// Server gates the group. Env: DEFAULT_CACHE_REDIS_SERVER
	Server *string `json:"server" yaml:"server"`
	// Env: DEFAULT_CACHE_REDIS_DATABASE
	Database string `env:"DATABASE" envDefault:"0" json:"database" yaml:"database"`
	// Env: DEFAULT_CACHE_REDIS_PORT
	Port string `env:"PORT" envDefault:"6379" json:"port" yaml:"port"`
}

// PageCache holds the full page cache frontend backend options.
type PageCache struct {
	// Server gates the group. Env: PAGE_CACHE_REDIS_SERVER
	Server *string `json:"server" yaml:"server"`
	// Env: PAGE_CACHE_REDIS_PORT
	Port string `env:"PORT" envDefault:"6379" json:"port" yaml:"port"`
	// Env: PAGE_CACHE_REDIS_DATABASE
	Database string `env:"DATABASE" envDefault:"1" json:"database" yaml:"database"`
	// Env: PAGE_CACHE_REDIS_COMPRESS
	CompressData string `env:"COMPRESS" envDefault:"0" json:"compress_data" yaml:"compress_data"`
}

// Session holds the redis session storage settings. Every field maps to
// SESSION_REDIS_<NAME>.
type Session struct {
	// Server gates the group and becomes the "host" option.
	// Env: SESSION_REDIS_SERVER
	Server *string `json:"server" yaml:"server"`

	Port                 string `env:"PORT" envDefault:"6379" json:"port" yaml:"port"`
	Password             string `env:"PASSWORD" json:"password" yaml:"password"`
	Timeout              string `env:"TIMEOUT" envDefault:"2.5" json:"timeout" yaml:"timeout"`
	PersistentIdentifier string `env:"PERSISTENT_IDENTIFIER" json:"persistent_identifier" yaml:"persistent_identifier"`
	Database             string `env:"DATABASE" envDefault:"2" json:"database" yaml:"database"`
	CompressionThreshold string `env:"COMPRESSION_THRESHOLD" envDefault:"2048" json:"compression_threshold" yaml:"compression_threshold"`
	CompressionLibrary   string `env:"COMPRESSION_LIBRARY" envDefault:"gzip" json:"compression_library" yaml:"compression_library"`
	LogLevel             string `env:"LOG_LEVEL" envDefault:"1" json:"log_level" yaml:"log_level"`
	MaxConcurrency       string `env:"MAX_CONCURRENCY" envDefault:"6" json:"max_concurrency" yaml:"max_concurrency"`
	BreakAfterFrontend   string `env:"BREAK_AFTER_FRONTEND" envDefault:"5" json:"break_after_frontend" yaml:"break_after_frontend"`
	BreakAfterAdminhtml  string `env:"BREAK_AFTER_ADMINHTML" envDefault:"30" json:"break_after_adminhtml" yaml:"break_after_adminhtml"`
	FirstLifetime        string `env:"FIRST_LIFETIME" envDefault:"600" json:"first_lifetime" yaml:"first_lifetime"`
	BotFirstLifetime     string `env:"BOT_FIRST_LIFETIME" envDefault:"60" json:"bot_first_lifetime" yaml:"bot_first_lifetime"`
	BotLifetime          string `env:"BOT_LIFETIME" envDefault:"7200" json:"bot_lifetime" yaml:"bot_lifetime"`
	DisableLocking       string `env:"DISABLE_LOCKING" envDefault:"0" json:"disable_locking" yaml:"disable_locking"`
	MinLifetime          string `env:"MIN_LIFETIME" envDefault:"60" json:"min_lifetime" yaml:"min_lifetime"`
	MaxLifetime          string `env:"MAX_LIFETIME" envDefault:"2592000" json:"max_lifetime" yaml:"max_lifetime"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(args []string, environ []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv(environ).
		withFlags(args).
		withJSON().
		build()
}
