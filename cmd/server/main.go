package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/handler"
	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/server"
	"github.com/MKhiriev/storefront-auth/internal/service"
	"github.com/MKhiriev/storefront-auth/internal/store"
	"github.com/MKhiriev/storefront-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("storefront-auth", "info").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("storefront-auth", cfg.App.LogLevel)

	ctx := context.Background()
	storages, err := store.NewStorages(ctx, cfg.Storage, cfg.App.TokenDuration, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.PrincipalService.BootstrapAdmin(ctx, cfg.App.Bootstrap); err != nil {
		log.Fatal().Err(err).Msg("error creating bootstrap admin")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", orNA(info.BuildVersion()))
	fmt.Printf("Build date: %s\n", orNA(info.BuildDate()))
	fmt.Printf("Build commit: %s\n", orNA(info.BuildCommit()))
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
