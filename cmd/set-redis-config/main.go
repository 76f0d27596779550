package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/env-patcher/internal/config"
	"github.com/MKhiriev/env-patcher/internal/logger"
	"github.com/MKhiriev/env-patcher/internal/service"
	"github.com/MKhiriev/env-patcher/internal/store"
	"github.com/spf13/afero"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("set-redis-config")
	cfg, err := config.GetStructuredConfig(os.Args[1:], os.Environ())
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("storage", cfg.Storage).Msg("received configs")

	storages := store.NewStorages(afero.NewOsFs())
	services := service.NewServices(storages, cfg.Storage, log)

	if err = services.RedisConfigService.AddRedisSettings(context.Background(), cfg.Redis); err != nil {
		log.Fatal().Err(err).Msg("error adding redis settings")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
