// Package server wires and runs the application's transport servers.
//
// It starts the HTTP and gRPC servers that have a configured address, stops
// them on a termination signal, and drains in-flight requests before exit.
package server
