package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finpulse/finpulse"
	"github.com/finpulse/finpulse/config"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()
	if cfg.GetSigningKey() == "" {
		logger.Fatal("AUTH_SIGNING_KEY must be set")
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	repo := finpulse.NewRepositoryManager(db)
	repo.MustValidate()

	if cfg.SeedDemo {
		if err := seedDemoUser(ctx, repo); err != nil {
			logger.Warn("seed demo user", zap.Error(err))
		}
	}

	provider := finpulse.NewUserProvider(repo.Users()).
		WithLogger(newZapLogger(logger, "auth.provider"))

	auther := finpulse.NewAuthenticator(provider, cfg).
		WithLogger(newZapLogger(logger, "auth")).
		WithActivitySink(zapActivitySink{log: logger.Named("auth.activity")})

	gate := finpulse.NewGate(finpulse.DefaultRoutes())

	httpAuth, err := finpulse.NewHTTPAuthenticator(auther, cfg, gate)
	if err != nil {
		logger.Fatal("http authenticator", zap.Error(err))
	}
	httpAuth = httpAuth.WithLogger(newZapLogger(logger, "auth.http"))

	app := fiber.New(fiber.Config{
		AppName:      "finpulse",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(httpAuth.SessionGate())

	controller := finpulse.NewAuthController(repo, httpAuth,
		finpulse.WithControllerLogger(newZapLogger(logger, "auth.controller")),
	)
	finpulse.RegisterAuthRoutes(app, controller)

	registerPages(app, cfg, repo)

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	logger.Info("finpulse listening", zap.Int("port", cfg.ServerPort))

	waitExitSignal()

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*finpulse.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// seedDemoUser creates a known account for local development. The user
// starts not onboarded so the full gate flow is reachable from a fresh
// database.
func seedDemoUser(ctx context.Context, repo finpulse.RepositoryManager) error {
	const demoEmail = "demo@finpulse.app"

	if _, err := repo.Users().GetByEmail(ctx, demoEmail); err == nil {
		return nil
	}

	hash, err := finpulse.HashPassword("demo-password-123")
	if err != nil {
		return err
	}

	_, err = repo.Users().Register(ctx, &finpulse.User{
		Name:         "Demo User",
		Email:        demoEmail,
		PasswordHash: hash,
	})
	return err
}

func waitExitSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
