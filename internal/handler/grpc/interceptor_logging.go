package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const traceIDKey = "x-trace-id"

// withTraceID attaches a request-scoped logger carrying trace_id, taken from
// the x-trace-id metadata or generated.
func (h *Handler) withTraceID(ctx context.Context) context.Context {
	traceID := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDKey); len(values) > 0 && len(values[0]) <= 128 {
			traceID = values[0]
		}
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	return l.WithContext(ctx)
}

func (h *Handler) unaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx = h.withTraceID(ctx)
	start := time.Now()

	resp, err := handler(ctx, req)

	zerolog.Ctx(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()
	return resp, err
}

func (h *Handler) streamLogging(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx := h.withTraceID(ss.Context())
	start := time.Now()

	err := handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})

	zerolog.Ctx(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()
	return err
}
