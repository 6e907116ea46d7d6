package http

import (
	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/service"
	"github.com/MKhiriev/storefront-auth/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator
	cfg       config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validators.NewAuthValidator(),
		cfg:       cfg,
		logger:    logger,
	}
}
