package service

import (
	"context"

	"github.com/MKhiriev/env-patcher/internal/config"
)

// RedisConfigService patches the configuration snapshot with redis cache and
// session settings.
type RedisConfigService interface {
	// AddRedisSettings merges every gated settings group of settings into the
	// snapshot and rewrites it. A missing snapshot is a no-op.
	AddRedisSettings(ctx context.Context, settings config.Redis) error
	// RemoveRedisSettings drops the cache section and a redis session
	// section from the snapshot and rewrites it. A missing snapshot is a
	// no-op.
	RemoveRedisSettings(ctx context.Context) error
}
