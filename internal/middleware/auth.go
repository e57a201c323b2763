package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const TokenKey ctxKey = "token"

// TokenValidator accepts or rejects a bearer token. auth.Tokens is one.
type TokenValidator interface {
	Validate(token string) error
}

// Auth requires an accepted bearer token on every method except those
// listed as open. Open methods still see a bearer token through Token,
// unchecked.
func Auth(v TokenValidator, open ...string) grpc.UnaryServerInterceptor {
	skip := methodSet(open)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		ctx, err := authenticate(ctx, v, skip[info.FullMethod])
		if err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}

// AuthStream is Auth for streaming methods.
func AuthStream(v TokenValidator, open ...string) grpc.StreamServerInterceptor {
	skip := methodSet(open)
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, next grpc.StreamHandler) error {
		ctx, err := authenticate(ss.Context(), v, skip[info.FullMethod])
		if err != nil {
			return err
		}
		return next(srv, &tokenStream{ServerStream: ss, ctx: ctx})
	}
}

func authenticate(ctx context.Context, v TokenValidator, open bool) (context.Context, error) {
	// Authorization: Bearer <token>
	raw := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = strings.TrimPrefix(vals[0], "Bearer ")
		}
	}
	if open {
		if raw != "" {
			ctx = context.WithValue(ctx, TokenKey, raw)
		}
		return ctx, nil
	}
	if raw == "" {
		return nil, status.Error(codes.Unauthenticated, "no token")
	}
	if err := v.Validate(raw); err != nil {
		return nil, status.Error(codes.Unauthenticated, "bad token")
	}
	return context.WithValue(ctx, TokenKey, raw), nil
}

type tokenStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *tokenStream) Context() context.Context { return s.ctx }

// Token returns the bearer token sent with this call.
func Token(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(TokenKey).(string)
	return t, ok
}

func methodSet(methods []string) map[string]bool {
	set := make(map[string]bool, len(methods))
	for _, m := range methods {
		set[m] = true
	}
	return set
}
