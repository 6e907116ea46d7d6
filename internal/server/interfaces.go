package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts
	// down gracefully.
	RunServer()

	// Run serves until ctx is done or a listener fails. It shuts every
	// server down before returning.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
