package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"store-rating/constants"
	"store-rating/controllers"
	"store-rating/dto"
	"store-rating/events"
	"store-rating/infra"
	"store-rating/jobs"
	"store-rating/metrics"
	"store-rating/middlewares"
	"store-rating/repositories"
	"store-rating/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles everything setupRouter needs.
type app struct {
	cfg       infra.Config
	db        *gorm.DB
	tokenDB   *gorm.DB
	publisher events.Publisher
	log       *zap.Logger
}

func setupRouter(a *app) *gin.Engine {
	userRepository := repositories.NewUserRepository(a.db)
	storeRepository := repositories.NewStoreRepository(a.db)
	ratingRepository := repositories.NewRatingRepository(a.db)
	tokenRepository := repositories.NewTokenRepository(a.tokenDB)

	authService := services.NewAuthService(userRepository, tokenRepository, a.publisher, []byte(a.cfg.JWTSecret), a.cfg.JWTTTL, a.log)
	adminService := services.NewAdminService(authService, userRepository, storeRepository, ratingRepository, a.publisher, a.log)
	userService := services.NewUserService(storeRepository, ratingRepository, a.publisher, a.log)
	ownerService := services.NewOwnerService(storeRepository)

	authController := controllers.NewAuthController(authService)
	adminController := controllers.NewAdminController(adminService)
	userController := controllers.NewUserController(userService)
	ownerController := controllers.NewOwnerController(ownerService)
	healthController := controllers.NewHealthController(a.db)

	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies(a.cfg.TrustedProxies)); err != nil {
		a.log.Warn("invalid TRUSTED_PROXIES; ignoring X-Forwarded-For", zap.Strings("proxies", a.cfg.TrustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(a.log))
	r.Use(metrics.Middleware())
	r.Use(cors.New(corsConfig(a.cfg.CORSOrigins)))

	r.GET("/health", healthController.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authMiddleware := middlewares.AuthMiddleware(authService)
	loginLimiter := middlewares.NewRateLimiter(a.cfg.LoginRatePerSecond, a.cfg.LoginRateBurst)

	authRouter := r.Group("/auth")
	authRouter.POST("/signup", authController.Signup)
	authRouter.POST("/login", loginLimiter.Middleware(), authController.Login)
	authRouter.POST("/password", authMiddleware, authController.ChangePassword)
	authRouter.POST("/logout", authMiddleware, authController.Logout)

	roleRoutes := map[constants.Role]func(g *gin.RouterGroup){
		constants.RoleAdmin: func(g *gin.RouterGroup) {
			g.GET("/dashboard", adminController.Dashboard)
			g.POST("/users", adminController.CreateUser)
			g.GET("/users", adminController.ListUsers)
			g.POST("/stores", adminController.CreateStore)
			g.GET("/stores", adminController.ListStores)
		},
		constants.RoleUser: func(g *gin.RouterGroup) {
			g.GET("/stores", userController.ListStores)
			g.POST("/rate", userController.Rate)
		},
		constants.RoleOwner: func(g *gin.RouterGroup) {
			g.GET("/ratings", ownerController.Ratings)
		},
	}
	for role, register := range roleRoutes {
		group := r.Group(constants.RoleRouteGroups[role], authMiddleware, middlewares.RoleBasedAccessControl(role))
		register(group)
	}

	return r
}

// trustedProxies returns nil when none are configured so ClientIP falls back
// to the connection's remote address.
func trustedProxies(proxies []string) []string {
	if len(proxies) == 0 {
		return nil
	}
	return proxies
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowHeaders("Authorization", constants.HeaderRequestID)
	cfg.AddExposeHeaders(constants.HeaderRequestID)
	return cfg
}

func newPublisher(cfg infra.Config, logger *zap.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set; domain events are dropped")
		return events.NopPublisher{}
	}
	logger.Info("publishing domain events to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := infra.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := infra.SetupDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	tokenDB, err := infra.SetupTokenDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to token blacklist database", zap.Error(err))
	}

	// in-memory sqlite always needs its schema
	if cfg.AutoMigrate || cfg.DBName == "" {
		if err := infra.Migrate(db); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		if err := infra.MigrateTokenDB(tokenDB); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
	}

	publisher := newPublisher(cfg, logger)

	a := &app{cfg: cfg, db: db, tokenDB: tokenDB, publisher: publisher, log: logger}
	r := setupRouter(a)

	if cfg.AdminEmail != "" {
		seedAdmin(a)
	}

	scheduler, err := jobs.Schedule(cfg.TokenCleanupSpec, jobs.NewTokenCleanup(repositories.NewTokenRepository(tokenDB), logger))
	if err != nil {
		logger.Fatal("invalid TOKEN_CLEANUP_SPEC", zap.String("spec", cfg.TokenCleanupSpec), zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	<-scheduler.Stop().Done()
	if err := publisher.Close(); err != nil {
		logger.Error("closing event publisher", zap.Error(err))
	}
	logger.Info("server exited")
}

func seedAdmin(a *app) {
	authService := services.NewAuthService(
		repositories.NewUserRepository(a.db),
		repositories.NewTokenRepository(a.tokenDB),
		a.publisher,
		[]byte(a.cfg.JWTSecret),
		a.cfg.JWTTTL,
		a.log,
	)
	created, err := services.SeedAdmin(context.Background(), authService, dto.CreateUserInput{
		Name:     a.cfg.AdminName,
		Email:    a.cfg.AdminEmail,
		Address:  a.cfg.AdminAddress,
		Password: a.cfg.AdminPassword,
	})
	if err != nil {
		a.log.Fatal("failed to seed admin", zap.Error(err))
	}
	if created {
		a.log.Info("seeded admin user", zap.String("email", a.cfg.AdminEmail))
	}
}
