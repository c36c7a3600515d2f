package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"bookstore/config"
	"bookstore/database"
	"bookstore/events"
	"bookstore/logger"
	"bookstore/routes"
	"bookstore/services"
	"bookstore/utils"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.Init(logger.Config{Level: cfg.LogLevel, Dev: cfg.LogDev})
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	sugar := log.Sugar()

	client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName, log)
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	var revoked services.RevocationStore
	rdb, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	switch {
	case err != nil:
		sugar.Warnw("redis unavailable, logout will not revoke tokens", "error", err)
	case rdb != nil:
		defer rdb.Close()
		revoked = database.NewRevocationStore(rdb)
	}

	var orderEvents services.OrderEvents
	if cfg.RabbitMQURL != "" {
		pub, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			sugar.Warnw("rabbitmq unavailable, order events disabled", "error", err)
		} else {
			defer pub.Close()
			orderEvents = pub
		}
	}

	hasher := utils.NewPasswordHasher()
	users := database.NewUserStore(db)
	books := database.NewBookStore(db)
	orders := database.NewOrderStore(db)

	userSvc := services.NewUserService(users, hasher, sugar)
	if cfg.AdminUsername != "" {
		if err := userSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r, routes.Deps{
		Auth:   services.NewAuthService(users, hasher, utils.NewTokenService(cfg.JWTSecret), revoked, sugar),
		Books:  services.NewBookService(books),
		Orders: services.NewOrderService(orders, orderEvents, sugar),
		Stats:  services.NewStatsService(books, orders),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
