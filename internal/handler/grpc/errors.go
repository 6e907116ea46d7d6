package grpc

import "errors"

var (
	errNoToken    = errors.New("no authorization metadata")
	errEmptyToken = errors.New("empty token in authorization metadata")
)
