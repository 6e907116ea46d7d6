// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/storefront-auth/internal/logger"
	"github.com/MKhiriev/storefront-auth/internal/service"
	"github.com/MKhiriev/storefront-auth/internal/token"
	"github.com/MKhiriev/storefront-auth/internal/utils"
)

// authorizationKey is the metadata key carrying the token. gRPC lower-cases
// metadata keys.
const authorizationKey = "authorization"

const bearerPrefix = "bearer "

// UnaryAuthInterceptor validates the token of every non-public unary call and
// stores its claims in the context ([utils.WithClaims]).
func (h *Handler) UnaryAuthInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, err := h.authenticate(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

// StreamAuthInterceptor is the streaming counterpart of UnaryAuthInterceptor.
func (h *Handler) StreamAuthInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := h.authenticate(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})
}

func (h *Handler) authenticate(ctx context.Context, fullMethod string) (context.Context, error) {
	if _, ok := h.publicMethods[fullMethod]; ok {
		return ctx, nil
	}

	log := logger.FromContext(ctx)

	tokenString, err := tokenFromMetadata(ctx)
	if err != nil {
		log.Info().Err(err).Str("method", fullMethod).Msg("call rejected")
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	claims, err := h.services.AuthService.ParseToken(ctx, tokenString, h.methodRoles[fullMethod]...)
	if err != nil {
		st := statusFromError(err)
		if st.Code() == codes.Unavailable {
			log.Err(err).Str("method", fullMethod).Msg("call failed")
		} else {
			log.Info().Err(err).Str("method", fullMethod).Msg("call rejected")
		}
		return nil, st.Err()
	}

	return utils.WithClaims(ctx, claims), nil
}

// statusFromError maps token and service errors to gRPC statuses with
// messages that do not reveal why a token was rejected.
func statusFromError(err error) *status.Status {
	switch {
	case errors.Is(err, token.ErrForbidden):
		return status.New(codes.PermissionDenied, "forbidden")
	case errors.Is(err, service.ErrInfrastructure):
		return status.New(codes.Unavailable, "service unavailable")
	default:
		return status.New(codes.Unauthenticated, "unauthorized")
	}
}

func tokenFromMetadata(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errNoToken
	}

	values := md.Get(authorizationKey)
	if len(values) == 0 || values[0] == "" {
		return "", errNoToken
	}

	tokenString := values[0]
	if len(tokenString) >= len(bearerPrefix) && strings.EqualFold(tokenString[:len(bearerPrefix)], bearerPrefix) {
		tokenString = tokenString[len(bearerPrefix):]
	}
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", errEmptyToken
	}

	return tokenString, nil
}

// wrappedServerStream overrides the context of a grpc.ServerStream.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
