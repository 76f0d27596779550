package service

import (
	"github.com/MKhiriev/env-patcher/internal/config"
	"github.com/MKhiriev/env-patcher/internal/logger"
	"github.com/MKhiriev/env-patcher/internal/store"
)

type Services struct {
	RedisConfigService RedisConfigService
}

func NewServices(storages *store.Storages, cfg config.Storage, logger *logger.Logger) *Services {
	return &Services{
		RedisConfigService: NewRedisConfigService(storages.SnapshotStorage, cfg, logger),
	}
}
