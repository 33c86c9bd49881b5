package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/bistro/internal/config"
	"github.com/Skotchmaster/bistro/internal/events"
	"github.com/Skotchmaster/bistro/internal/httpserver"
	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/bistro/internal/middleware/logging"
	"github.com/Skotchmaster/bistro/internal/payments"
	"github.com/Skotchmaster/bistro/internal/repo"
	"github.com/Skotchmaster/bistro/internal/search"
	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/internal/tokens"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	l := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(l)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if cfg.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close(context.Background())
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var pub events.Publisher = events.Nop{}
	if cfg.KafkaEnabled() {
		pub = events.NewKafkaPublisher(cfg.KafkaBrokers, l)
	} else {
		l.Info("kafka_disabled", "reason", "KAFKA_BROKERS not set")
	}

	menuSvc := &service.MenuService{Repo: store, Events: pub}
	if cfg.SearchEnabled() {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			l.Warn("search_disabled", "reason", "elasticsearch unreachable", "error", err)
		} else {
			menuSvc.Index = search.NewMenuIndex(es, cfg.ESIndex)
		}
	}

	paySvc := &service.PaymentService{Repo: store, Events: pub}
	if cfg.StripeSecretKey != "" {
		paySvc.Intents = payments.NewStripeIntents(cfg.StripeSecretKey, cfg.PaymentCurrency)
	} else {
		l.Info("payments_disabled", "reason", "STRIPE_SECRET_KEY not set")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(l))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	userSvc := &service.UserService{Repo: store, Events: pub}
	httpserver.Register(e, httpserver.Deps{
		Users:    &httpserver.UserHTTP{Svc: userSvc},
		Menu:     &httpserver.MenuHTTP{Svc: menuSvc},
		Cart:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: store, Events: pub}},
		Payments: &httpserver.PaymentHTTP{Svc: paySvc},
		Stats:    &httpserver.StatsHTTP{Svc: &service.StatsService{Repo: store}},
		Tokens:   &httpserver.TokenHTTP{Issuer: tokens.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTTTL)},
		Guard:    auth.NewGuard([]byte(cfg.JWTSecret), userSvc),
		Ready:    store.Ping,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		l.Info("server_started", "addr", srv.Addr, "driver", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("server_failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("server_shutdown_failed", "error", err)
	}
	closeAll(shutdownCtx, l, store, pub)
	l.Info("shutdown_complete")
	return nil
}

func closeAll(ctx context.Context, l *slog.Logger, store repo.Store, pub events.Publisher) {
	if err := pub.Close(); err != nil {
		l.Error("publisher_close_failed", "error", err)
	}
	if err := store.Close(ctx); err != nil {
		l.Error("store_close_failed", "error", err)
	}
}
