package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/service"
	"github.com/MKhiriev/storefront-auth/models"
)

// Handler is the root gRPC transport handler.
//
// It owns the health service and the auth interceptors. Every method not in
// the public set requires a valid token; methods in the role map additionally
// require one of the listed roles.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// publicMethods are full method names served without a token.
	publicMethods map[string]struct{}

	// methodRoles maps full method names to the roles allowed to call them.
	methodRoles map[string][]models.Role

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The health Check method is always
// public; cfg adds further public methods and admin-only methods.
func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	h := &Handler{
		services:      services,
		health:        health.NewServer(),
		publicMethods: map[string]struct{}{healthpb.Health_Check_FullMethodName: {}},
		methodRoles:   make(map[string][]models.Role),
		logger:        logger,
	}
	for _, m := range cfg.GRPCPublicMethods {
		h.publicMethods[m] = struct{}{}
	}
	for _, m := range cfg.GRPCAdminMethods {
		h.methodRoles[m] = []models.Role{models.RoleAdmin}
	}

	logger.Debug().
		Int("public_methods", len(h.publicMethods)).
		Int("admin_methods", len(h.methodRoles)).
		Msg("gRPC handler created")
	return h
}

// ServerOptions returns the interceptor chain the gRPC server must be built
// with: tracing and access logging first, then authentication.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.unaryLogging, h.UnaryAuthInterceptor),
		grpc.ChainStreamInterceptor(h.streamLogging, h.StreamAuthInterceptor),
	}
}

// Register attaches the services of this handler to s and marks them serving.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

// Shutdown reports NOT_SERVING to health watchers before the server stops.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
