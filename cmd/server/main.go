package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"clinic-console-api/internal/auth"
	"clinic-console-api/internal/config"
	"clinic-console-api/internal/gateway"
	"clinic-console-api/internal/handler"
	"clinic-console-api/internal/logger"
	"clinic-console-api/internal/middleware"
	"clinic-console-api/internal/mockapi"
	"clinic-console-api/internal/orchestrator"
	"clinic-console-api/internal/session"
	"clinic-console-api/internal/state"
	"clinic-console-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appts, closeStore := openAppointments(ctx, cfg, log)
	defer closeStore()

	sessions, closeSessions := openSessions(ctx, cfg, log)
	defer closeSessions()

	demo, err := auth.NewDemo(cfg.DemoEmail, cfg.DemoPassword)
	if err != nil {
		log.Fatal("demo credentials", zap.Error(err))
	}
	tokens := auth.NewTokens(cfg.TokenSecret)
	if tokens.Signed() {
		log.Info("signed session tokens enabled")
	}

	catalog := store.NewCatalog(store.DemoServiceCosts(), store.DemoClinicInfo())
	api := mockapi.New(appts, catalog, demo, tokens, mockapi.DefaultLatency().Scale(cfg.LatencyScale), log)

	st := state.NewStore(state.Initial(catalog.ServiceCosts(), catalog.ClinicInfo()), log)
	orc := orchestrator.New(api, st, sessions, log)
	defer orc.Close()

	restored, err := orc.Restore(ctx)
	if err != nil {
		log.Warn("session bootstrap", zap.Error(err))
	} else if restored {
		log.Info("restored stored session")
	}

	// grpc server
	rl := middleware.NewRateLimiter(ctx, cfg.LoginRPS, cfg.LoginBurst)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.Logging(log),
			middleware.RateLimit(rl, handler.MethodLogin, handler.MethodValidateToken),
			middleware.Auth(tokens, handler.MethodLogin, handler.MethodValidateToken),
		),
		grpc.ChainStreamInterceptor(
			middleware.LoggingStream(log),
			middleware.AuthStream(tokens),
		),
	)
	handler.Register(srv, handler.New(orc, st, log))

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatal("listen", zap.Error(err))
	}
	go func() {
		log.Info("grpc listening", zap.String("port", cfg.GRPCPort))
		if err := srv.Serve(lis); err != nil {
			log.Error("grpc", zap.Error(err))
		}
	}()

	// json bridge -> forwards browser requests to grpc on localhost
	bridge, err := gateway.Dial("localhost:"+cfg.GRPCPort, gateway.Options{
		Service:           handler.ServiceName,
		RequestsPerSecond: cfg.GatewayRPS,
		Logger:            log,
	})
	if err != nil {
		log.Fatal("gateway", zap.Error(err))
	}
	defer bridge.Close()

	httpSrv := &http.Server{
		Addr:    ":" + cfg.WebPort,
		Handler: bridge.Handler(),
	}
	go func() {
		log.Info("http listening", zap.String("port", cfg.WebPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdown); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	srv.GracefulStop()
}

// openAppointments uses Postgres when DATABASE_URL is set and the
// in-memory collection otherwise. Both start from the demo records.
func openAppointments(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Appointments, func()) {
	if cfg.DatabaseURL == "" {
		log.Info("using in-memory appointments")
		return store.NewMemory(store.DemoAppointments()), func() {}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db", zap.Error(err))
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatal("db ping", zap.Error(err))
	}
	log.Info("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Warn("migration file not found, skipping", zap.Error(err))
	} else if _, err := pool.Exec(ctx, string(migration)); err != nil {
		log.Warn("migration", zap.Error(err))
	} else {
		log.Info("migration applied")
	}

	pg := store.NewPostgres(pool)
	if err := pg.Seed(ctx, store.DemoAppointments()); err != nil {
		log.Fatal("seed", zap.Error(err))
	}
	return pg, pool.Close
}

func openSessions(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Storage, func()) {
	switch cfg.SessionBackend {
	case "file":
		log.Info("session storage on disk", zap.String("path", cfg.SessionFile))
		return session.NewFile(cfg.SessionFile), func() {}
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("redis ping", zap.Error(err))
		}
		log.Info("session storage in redis", zap.String("addr", cfg.RedisAddr))
		return session.NewRedis(client, ""), func() { client.Close() }
	}
	return session.NewMemory(), func() {}
}
