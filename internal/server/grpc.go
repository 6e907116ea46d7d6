package server

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/storefront-auth/internal/config"
	myGRPC "github.com/MKhiriev/storefront-auth/internal/handler/grpc"
	"github.com/MKhiriev/storefront-auth/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer(handler.ServerOptions()...)
	handler.Register(server)

	return &grpcServer{
		handler: handler,
		server:  server,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

// RunServer blocks until the server stops. A graceful stop returns nil.
func (g *grpcServer) RunServer() error {
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC server listen on %s: %w", g.address, err)
	}

	g.logger.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")
	if err = g.server.Serve(lis); err != nil {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight calls until ctx is done, then closes every
// connection.
func (g *grpcServer) Shutdown(ctx context.Context) {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.server.Stop()
	}
}
