package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/env-patcher/internal/config"
	"github.com/MKhiriev/env-patcher/internal/logger"
	"github.com/MKhiriev/env-patcher/internal/snapshot"
	"github.com/MKhiriev/env-patcher/internal/store"
)

// redisConfigService is the concrete implementation of RedisConfigService.
// Every call loads the snapshot, mutates it in memory and writes it back in
// full.
type redisConfigService struct {
	snapshotStorage store.SnapshotStorage
	envFile         string

	logger *logger.Logger
}

// NewRedisConfigService constructs a RedisConfigService operating on the
// snapshot file named by cfg.EnvFile.
func NewRedisConfigService(snapshotStorage store.SnapshotStorage, cfg config.Storage, logger *logger.Logger) RedisConfigService {
	return &redisConfigService{
		snapshotStorage: snapshotStorage,
		envFile:         cfg.EnvFile,
		logger:          logger.GetChildLogger("redis-config"),
	}
}

// AddRedisSettings implements RedisConfigService.
//
// The snapshot is rewritten even when no group is gated on, so the file is
// always normalised to the exported layout.
func (s *redisConfigService) AddRedisSettings(ctx context.Context, settings config.Redis) error {
	arr, found, err := s.load(ctx)
	if err != nil || !found {
		return err
	}

	applied := applyRedisSettings(arr, settings)
	for _, group := range applied {
		s.logger.Info().Str("group", group).Msg("applying redis settings")
	}
	if len(applied) == 0 {
		s.logger.Debug().Msg("no redis server variables set")
	}

	return s.save(ctx, arr)
}

// RemoveRedisSettings implements RedisConfigService.
func (s *redisConfigService) RemoveRedisSettings(ctx context.Context) error {
	arr, found, err := s.load(ctx)
	if err != nil || !found {
		return err
	}

	for _, section := range stripRedisSettings(arr) {
		s.logger.Info().Str("section", section).Msg("removing redis settings")
	}

	return s.save(ctx, arr)
}

// load returns found == false, without an error, when there is no snapshot
// to patch.
func (s *redisConfigService) load(ctx context.Context) (*snapshot.Array, bool, error) {
	arr, err := s.snapshotStorage.Load(ctx, s.envFile)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		s.logger.Debug().Str("path", s.envFile).Msg("snapshot not found, nothing to do")
		return nil, false, nil
	}
	if err != nil {
		s.logger.Err(err).Str("path", s.envFile).Msg("failed to load snapshot")
		return nil, false, fmt.Errorf("error loading snapshot: %w", err)
	}

	return arr, true, nil
}

func (s *redisConfigService) save(ctx context.Context, arr *snapshot.Array) error {
	if err := s.snapshotStorage.Save(ctx, s.envFile, arr); err != nil {
		s.logger.Err(err).Str("path", s.envFile).Msg("failed to save snapshot")
		return fmt.Errorf("error saving snapshot: %w", err)
	}

	s.logger.Debug().Str("path", s.envFile).Msg("snapshot saved")
	return nil
}
