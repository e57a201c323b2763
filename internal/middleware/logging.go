package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Logging records one line per call. Calls ending in a gRPC error log at
// warn, the rest at info.
func Logging(log *zap.Logger) grpc.UnaryServerInterceptor {
	log = log.Named("grpc")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		logCall(log, "rpc", info.FullMethod, start, err)
		return resp, err
	}
}

// LoggingStream logs a streaming call once it ends.
func LoggingStream(log *zap.Logger) grpc.StreamServerInterceptor {
	log = log.Named("grpc")
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, next grpc.StreamHandler) error {
		start := time.Now()
		err := next(srv, ss)
		logCall(log, "stream", info.FullMethod, start, err)
		return err
	}
}

func logCall(log *zap.Logger, msg, method string, start time.Time, err error) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
		zap.String("code", status.Code(err).String()),
	}
	if err != nil {
		log.Warn(msg, append(fields, zap.Error(err))...)
		return
	}
	log.Info(msg, fields...)
}
