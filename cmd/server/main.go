package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tiptally/tiptally-api/internal/adapters/http/handler"
	"github.com/tiptally/tiptally-api/internal/adapters/repository/postgres"
	"github.com/tiptally/tiptally-api/internal/core/demodata"
	"github.com/tiptally/tiptally-api/internal/core/shift"
	"github.com/tiptally/tiptally-api/internal/core/timezone"
	"github.com/tiptally/tiptally-api/internal/platform/config"
	pg "github.com/tiptally/tiptally-api/internal/platform/db/postgres"
	"github.com/tiptally/tiptally-api/internal/platform/logging"
	"github.com/tiptally/tiptally-api/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(os.Getenv("DEBUG") != "")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)
	accountRepo := postgres.NewAccountRepository(dbPool)
	shiftRepo := postgres.NewShiftRepository(dbPool)

	converter := timezone.New(cfg.Demo.TimeZone, nil, logger)
	shiftSvc := shift.NewService(shiftRepo, nil)
	seeder := demodata.NewSeeder(accountRepo, shiftRepo, converter, txManager, logger, demodata.SeederConfig{
		Password: cfg.Demo.Password,
	})

	if err := seeder.SeedDemoData(ctx); err != nil {
		logger.Error("startup demo data seeding failed", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	tokens := handler.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL, nil)
	router := handler.NewRouter(handler.RouterDeps{
		Accounts: accountRepo,
		Shifts:   shiftSvc,
		Seeder:   seeder,
		Tokens:   tokens,
		Cookies: handler.CookieSettings{
			Domain: cfg.Auth.CookieDomain,
			Secure: cfg.Auth.SecureCookie,
		},
		Logger:         logger,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	httpServer := server.New(cfg.Server.ListenAddr, router)
	logger.Info("HTTP server listening", zap.String("addr", cfg.Server.ListenAddr))

	if err := httpServer.Run(ctx); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}
