// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Defaults(t *testing.T) {
	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg, nil)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, DefaultEnvFile, cfg.Storage.EnvFile)
	assert.Empty(t, cfg.JSONFilePath)

	assert.Nil(t, cfg.Redis.DefaultCache.Server)
	assert.Equal(t, "0", cfg.Redis.DefaultCache.Database)
	assert.Equal(t, "6379", cfg.Redis.DefaultCache.Port)

	assert.Nil(t, cfg.Redis.PageCache.Server)
	assert.Equal(t, "6379", cfg.Redis.PageCache.Port)
	assert.Equal(t, "1", cfg.Redis.PageCache.Database)
	assert.Equal(t, "0", cfg.Redis.PageCache.CompressData)

	s := cfg.Redis.Session
	assert.Nil(t, s.Server)
	assert.Equal(t, "6379", s.Port)
	assert.Equal(t, "", s.Password)
	assert.Equal(t, "2.5", s.Timeout)
	assert.Equal(t, "", s.PersistentIdentifier)
	assert.Equal(t, "2", s.Database)
	assert.Equal(t, "2048", s.CompressionThreshold)
	assert.Equal(t, "gzip", s.CompressionLibrary)
	assert.Equal(t, "1", s.LogLevel)
	assert.Equal(t, "6", s.MaxConcurrency)
	assert.Equal(t, "5", s.BreakAfterFrontend)
	assert.Equal(t, "30", s.BreakAfterAdminhtml)
	assert.Equal(t, "600", s.FirstLifetime)
	assert.Equal(t, "60", s.BotFirstLifetime)
	assert.Equal(t, "7200", s.BotLifetime)
	assert.Equal(t, "0", s.DisableLocking)
	assert.Equal(t, "60", s.MinLifetime)
	assert.Equal(t, "2592000", s.MaxLifetime)
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	environ := []string{
		"CONFIG=/path/to/config.json",
		"ENV_FILE=/var/www/app/etc/env.php",

		"DEFAULT_CACHE_REDIS_SERVER=cache.local",
		"DEFAULT_CACHE_REDIS_DATABASE=3",
		"DEFAULT_CACHE_REDIS_PORT=6380",

		"PAGE_CACHE_REDIS_SERVER=fpc.local",
		"PAGE_CACHE_REDIS_PORT=6381",
		"PAGE_CACHE_REDIS_DATABASE=4",
		"PAGE_CACHE_REDIS_COMPRESS=1",

		"SESSION_REDIS_SERVER=session.local",
		"SESSION_REDIS_PORT=6382",
		"SESSION_REDIS_PASSWORD=secret",
		"SESSION_REDIS_TIMEOUT=5",
		"SESSION_REDIS_PERSISTENT_IDENTIFIER=sess-db0",
		"SESSION_REDIS_DATABASE=5",
		"SESSION_REDIS_COMPRESSION_THRESHOLD=4096",
		"SESSION_REDIS_COMPRESSION_LIBRARY=lzf",
		"SESSION_REDIS_LOG_LEVEL=4",
		"SESSION_REDIS_MAX_CONCURRENCY=20",
		"SESSION_REDIS_BREAK_AFTER_FRONTEND=7",
		"SESSION_REDIS_BREAK_AFTER_ADMINHTML=40",
		"SESSION_REDIS_FIRST_LIFETIME=900",
		"SESSION_REDIS_BOT_FIRST_LIFETIME=90",
		"SESSION_REDIS_BOT_LIFETIME=3600",
		"SESSION_REDIS_DISABLE_LOCKING=1",
		"SESSION_REDIS_MIN_LIFETIME=120",
		"SESSION_REDIS_MAX_LIFETIME=86400",
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg, environ)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/var/www/app/etc/env.php", cfg.Storage.EnvFile)

	require.NotNil(t, cfg.Redis.DefaultCache.Server)
	assert.Equal(t, "cache.local", *cfg.Redis.DefaultCache.Server)
	assert.Equal(t, "3", cfg.Redis.DefaultCache.Database)
	assert.Equal(t, "6380", cfg.Redis.DefaultCache.Port)

	require.NotNil(t, cfg.Redis.PageCache.Server)
	assert.Equal(t, "fpc.local", *cfg.Redis.PageCache.Server)
	assert.Equal(t, "6381", cfg.Redis.PageCache.Port)
	assert.Equal(t, "4", cfg.Redis.PageCache.Database)
	assert.Equal(t, "1", cfg.Redis.PageCache.CompressData)

	s := cfg.Redis.Session
	require.NotNil(t, s.Server)
	assert.Equal(t, "session.local", *s.Server)
	assert.Equal(t, "6382", s.Port)
	assert.Equal(t, "secret", s.Password)
	assert.Equal(t, "5", s.Timeout)
	assert.Equal(t, "sess-db0", s.PersistentIdentifier)
	assert.Equal(t, "5", s.Database)
	assert.Equal(t, "4096", s.CompressionThreshold)
	assert.Equal(t, "lzf", s.CompressionLibrary)
	assert.Equal(t, "4", s.LogLevel)
	assert.Equal(t, "20", s.MaxConcurrency)
	assert.Equal(t, "7", s.BreakAfterFrontend)
	assert.Equal(t, "40", s.BreakAfterAdminhtml)
	assert.Equal(t, "900", s.FirstLifetime)
	assert.Equal(t, "90", s.BotFirstLifetime)
	assert.Equal(t, "3600", s.BotLifetime)
	assert.Equal(t, "1", s.DisableLocking)
	assert.Equal(t, "120", s.MinLifetime)
	assert.Equal(t, "86400", s.MaxLifetime)
}

// TestParseEnv_EmptyGateIsPresent verifies that a gate variable set to the
// empty string still enables its group.
func TestParseEnv_EmptyGateIsPresent(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnv(cfg, []string{"PAGE_CACHE_REDIS_SERVER="})

	require.NoError(t, err)
	require.NotNil(t, cfg.Redis.PageCache.Server)
	assert.Equal(t, "", *cfg.Redis.PageCache.Server)
	assert.Nil(t, cfg.Redis.DefaultCache.Server)
	assert.Nil(t, cfg.Redis.Session.Server)
}

func TestParseEnv_IgnoresUnrelatedVariables(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnv(cfg, []string{"PATH=/usr/bin", "REDIS_SERVER=redis", "HOME=/root"})

	require.NoError(t, err)
	assert.Nil(t, cfg.Redis.DefaultCache.Server)
	assert.Nil(t, cfg.Redis.PageCache.Server)
	assert.Nil(t, cfg.Redis.Session.Server)
}

func TestLookupGate(t *testing.T) {
	vars := map[string]string{"SET": "value", "EMPTY": ""}

	got := lookupGate(vars, "SET")
	require.NotNil(t, got)
	assert.Equal(t, "value", *got)

	got = lookupGate(vars, "EMPTY")
	require.NotNil(t, got)
	assert.Empty(t, *got)

	assert.Nil(t, lookupGate(vars, "MISSING"))
}

// TestParseEnv_EmptyValueSkipsDefault verifies that a redis variable set to
// the empty string is kept empty while absent ones still take their default.
func TestParseEnv_EmptyValueSkipsDefault(t *testing.T) {
	// Arrange
	environ := []string{
		"SESSION_REDIS_SERVER=",
		"SESSION_REDIS_DATABASE=",
		"SESSION_REDIS_COMPRESSION_LIBRARY=",
		"PAGE_CACHE_REDIS_SERVER=x",
		"PAGE_CACHE_REDIS_PORT=",
		"DEFAULT_CACHE_REDIS_DATABASE=",
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg, environ)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Redis.Session.Database)
	assert.Equal(t, "", cfg.Redis.Session.CompressionLibrary)
	assert.Equal(t, "6379", cfg.Redis.Session.Port)
	assert.Equal(t, "2.5", cfg.Redis.Session.Timeout)

	assert.Equal(t, "", cfg.Redis.PageCache.Port)
	assert.Equal(t, "1", cfg.Redis.PageCache.Database)

	assert.Equal(t, "", cfg.Redis.DefaultCache.Database)
	assert.Equal(t, "6379", cfg.Redis.DefaultCache.Port)
}

// TestParseEnv_EmptyEnvFileKeepsDefault verifies that the snapshot path is not
// affected by the empty-value handling of redis fields.
func TestParseEnv_EmptyEnvFileKeepsDefault(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnv(cfg, []string{"ENV_FILE="})

	require.NoError(t, err)
	assert.Equal(t, DefaultEnvFile, cfg.Storage.EnvFile)
}
