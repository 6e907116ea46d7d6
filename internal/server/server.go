package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/storefront-auth/internal/config"
	"github.com/MKhiriev/storefront-auth/internal/handler"
	"github.com/MKhiriev/storefront-auth/internal/logger"
)

// shutdownTimeout bounds the graceful part of Shutdown.
const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger

	shutdownOnce sync.Once
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

func (s *server) Run(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersToRun
	}

	errCh := make(chan error, 2)

	// launch all created servers
	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		go func() { errCh <- s.httpServer.RunServer() }()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching GRPC server")
		go func() { errCh <- s.gRPCServer.RunServer() }()
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
	}

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")

	return err
}

// Shutdown stops every started server. It is safe to call more than once.
func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			s.httpServer.Shutdown(ctx)
		}
		if s.gRPCServer != nil {
			s.gRPCServer.Shutdown(ctx)
		}
	})
}
