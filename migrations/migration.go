package main

import (
	"context"
	"log"

	"store-rating/dto"
	"store-rating/events"
	"store-rating/infra"
	"store-rating/repositories"
	"store-rating/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	db, err := infra.SetupDB(cfg, logger)
	if err != nil {
		logger.Fatal("setup database", zap.Error(err))
	}
	if err := infra.Migrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	tokenDB, err := infra.SetupTokenDB(cfg, logger)
	if err != nil {
		logger.Fatal("setup token database", zap.Error(err))
	}
	if err := infra.MigrateTokenDB(tokenDB); err != nil {
		logger.Fatal("migrate token database", zap.Error(err))
	}

	if cfg.AdminEmail == "" {
		logger.Info("ADMIN_EMAIL not set; skipping admin seed")
		return
	}
	authService := services.NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewTokenRepository(tokenDB),
		events.NopPublisher{},
		[]byte(cfg.JWTSecret),
		cfg.JWTTTL,
		logger,
	)
	created, err := services.SeedAdmin(context.Background(), authService, dto.CreateUserInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Address:  cfg.AdminAddress,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}
	logger.Info("migration finished", zap.Bool("admin_created", created))
}
