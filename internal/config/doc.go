// Package config provides configuration loading, merging, and validation
// facilities for the redis config patcher.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML config file
//
// The main entry point is [GetStructuredConfig].
package config
