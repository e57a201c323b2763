// Package gateway lets a browser reach ConsoleService over plain HTTP.
// POST /rpc/{method} takes the request Struct as JSON, forwards it over a
// gRPC client connection and writes the reply Struct back as JSON.
// GET /watch/{method} relays a server stream as server-sent events.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"clinic-console-api/internal/middleware"
)

const maxBody = 1 << 20

type Options struct {
	// Service is the gRPC service name methods are resolved against.
	Service string
	// RequestsPerSecond caps each client IP on /rpc. Zero disables it.
	RequestsPerSecond int
	Logger            *zap.Logger
}

// Bridge forwards HTTP calls to a gRPC server.
type Bridge struct {
	conn    grpc.ClientConnInterface
	closer  io.Closer
	service string
	rps     int
	log     *zap.Logger
}

// Dial connects to the gRPC server at addr (e.g. "localhost:50051").
func Dial(addr string, opt Options) (*Bridge, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("gateway dial: %w", err)
	}
	b := New(conn, opt)
	b.closer = conn
	return b, nil
}

// New wraps an existing connection. The caller keeps ownership of it.
func New(conn grpc.ClientConnInterface, opt Options) *Bridge {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{conn: conn, service: opt.Service, rps: opt.RequestsPerSecond, log: log.Named("gateway")}
}

func (b *Bridge) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

func (b *Bridge) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Group(func(r chi.Router) {
		if b.rps > 0 {
			r.Use(httprate.LimitByIP(b.rps, time.Second))
		}
		r.Post("/rpc/{method}", b.forward)
	})
	r.Get("/watch/{method}", b.watch)
	return r
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request) {
	method := chi.URLParam(r, "method")
	full := "/" + b.service + "/" + method

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeStatus(w, status.New(codes.Internal, "read body failed"))
		return
	}
	req := &structpb.Struct{}
	if len(body) > 0 {
		if err := protojson.Unmarshal(body, req); err != nil {
			writeStatus(w, status.New(codes.InvalidArgument, "body must be a JSON object"))
			return
		}
	}

	ctx := outgoing(r)
	resp := &structpb.Struct{}
	start := time.Now()
	if err := b.conn.Invoke(ctx, full, req, resp); err != nil {
		st := status.Convert(err)
		b.log.Debug("forward failed", zap.String("method", full), zap.String("code", st.Code().String()), zap.Duration("duration", time.Since(start)))
		writeStatus(w, st)
		return
	}
	b.log.Debug("forwarded", zap.String("method", full), zap.Duration("duration", time.Since(start)))

	out, err := protojson.Marshal(resp)
	if err != nil {
		writeStatus(w, status.New(codes.Internal, "encode reply"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// watch opens a server stream and writes each message as an SSE data
// event until either side hangs up.
func (b *Bridge) watch(w http.ResponseWriter, r *http.Request) {
	full := "/" + b.service + "/" + chi.URLParam(r, "method")
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeStatus(w, status.New(codes.Internal, "streaming unsupported"))
		return
	}

	ctx, cancel := context.WithCancel(outgoing(r))
	defer cancel()
	stream, err := b.conn.NewStream(ctx, &grpc.StreamDesc{ServerStreams: true}, full)
	if err != nil {
		writeStatus(w, status.Convert(err))
		return
	}
	if err := stream.SendMsg(&structpb.Struct{}); err != nil {
		writeStatus(w, status.Convert(err))
		return
	}
	if err := stream.CloseSend(); err != nil {
		writeStatus(w, status.Convert(err))
		return
	}

	// The first message tells a refused stream (bad token, unknown
	// method) apart from a live one before any headers go out.
	msg := &structpb.Struct{}
	if err := stream.RecvMsg(msg); err != nil {
		writeStatus(w, status.Convert(err))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	for {
		out, err := protojson.Marshal(msg)
		if err != nil {
			b.log.Warn("encode stream message", zap.String("method", full), zap.Error(err))
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", out); err != nil {
			return
		}
		flusher.Flush()

		msg = &structpb.Struct{}
		if err := stream.RecvMsg(msg); err != nil {
			if err != io.EOF && status.Code(err) != codes.Canceled {
				b.log.Debug("stream ended", zap.String("method", full), zap.Error(err))
			}
			return
		}
	}
}

// outgoing carries the caller's Authorization header and address to the
// gRPC server.
func outgoing(r *http.Request) context.Context {
	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		md.Set(middleware.ForwardedForKey, host)
	} else if r.RemoteAddr != "" {
		md.Set(middleware.ForwardedForKey, r.RemoteAddr)
	}
	return metadata.NewOutgoingContext(r.Context(), md)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeStatus(w http.ResponseWriter, st *status.Status) {
	writeJSON(w, HTTPStatus(st.Code()), errorBody{Code: st.Code().String(), Message: st.Message()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// HTTPStatus maps a gRPC code to the closest HTTP status.
func HTTPStatus(c codes.Code) int {
	switch c {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.OutOfRange, codes.FailedPrecondition:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Canceled:
		return 499
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
