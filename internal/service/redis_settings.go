package service

import (
	"github.com/MKhiriev/env-patcher/internal/config"
	"github.com/MKhiriev/env-patcher/internal/snapshot"
)

// RedisCacheBackend is the cache backend class written for both cache
// frontends.
const RedisCacheBackend = "Cm_Cache_Backend_Redis"

// Settings group names, as reported in logs.
const (
	GroupDefaultCache = "default_cache"
	GroupPageCache    = "page_cache"
	GroupSession      = "session"
)

// Top-level snapshot sections touched by the patcher.
const (
	sectionCache   = "cache"
	sectionSession = "session"
)

// applyRedisSettings merges every gated group of settings into arr, in the
// order default cache, page cache, session, and returns the names of the
// groups that were applied.
func applyRedisSettings(arr *snapshot.Array, settings config.Redis) []string {
	applied := make([]string, 0, 3)

	if settings.DefaultCache.Server != nil {
		snapshot.ReplaceRecursive(arr, defaultCacheSettings(settings.DefaultCache))
		applied = append(applied, GroupDefaultCache)
	}

	if settings.PageCache.Server != nil {
		snapshot.ReplaceRecursive(arr, pageCacheSettings(settings.PageCache))
		applied = append(applied, GroupPageCache)
	}

	if settings.Session.Server != nil {
		snapshot.ReplaceRecursive(arr, sessionSettings(settings.Session))
		applied = append(applied, GroupSession)
	}

	return applied
}

// stripRedisSettings removes the whole cache section, whatever its backend,
// and the session section when it is stored in redis. A section holding null
// counts as unset and is kept. It returns the names of the removed sections.
func stripRedisSettings(arr *snapshot.Array) []string {
	removed := make([]string, 0, 2)

	if cache, ok := arr.Get(snapshot.StringKey(sectionCache)); ok && cache != nil {
		arr.Delete(snapshot.StringKey(sectionCache))
		removed = append(removed, sectionCache)
	}

	if save, ok := arr.Lookup(sectionSession, "save"); ok && save == "redis" {
		arr.Delete(snapshot.StringKey(sectionSession))
		removed = append(removed, sectionSession)
	}

	return removed
}

func defaultCacheSettings(c config.DefaultCache) *snapshot.Array {
	options := snapshot.NewArray().
		Put("server", *c.Server).
		Put("database", c.Database).
		Put("port", c.Port)

	return cacheFrontend("default", options)
}

func pageCacheSettings(c config.PageCache) *snapshot.Array {
	options := snapshot.NewArray().
		Put("server", *c.Server).
		Put("port", c.Port).
		Put("database", c.Database).
		Put("compress_data", c.CompressData)

	return cacheFrontend("page_cache", options)
}

func cacheFrontend(name string, options *snapshot.Array) *snapshot.Array {
	frontend := snapshot.NewArray().
		Put("backend", RedisCacheBackend).
		Put("backend_options", options)

	return snapshot.NewArray().
		Put(sectionCache, snapshot.NewArray().
			Put("frontend", snapshot.NewArray().
				Put(name, frontend)))
}

func sessionSettings(s config.Session) *snapshot.Array {
	redis := snapshot.NewArray().
		Put("host", *s.Server).
		Put("port", s.Port).
		Put("password", s.Password).
		Put("timeout", s.Timeout).
		Put("persistent_identifier", s.PersistentIdentifier).
		Put("database", s.Database).
		Put("compression_threshold", s.CompressionThreshold).
		Put("compression_library", s.CompressionLibrary).
		Put("log_level", s.LogLevel).
		Put("max_concurrency", s.MaxConcurrency).
		Put("break_after_frontend", s.BreakAfterFrontend).
		Put("break_after_adminhtml", s.BreakAfterAdminhtml).
		Put("first_lifetime", s.FirstLifetime).
		Put("bot_first_lifetime", s.BotFirstLifetime).
		Put("bot_lifetime", s.BotLifetime).
		Put("disable_locking", s.DisableLocking).
		Put("min_lifetime", s.MinLifetime).
		Put("max_lifetime", s.MaxLifetime)

	return snapshot.NewArray().
		Put(sectionSession, snapshot.NewArray().
			Put("save", "redis").
			Put("redis", redis))
}
