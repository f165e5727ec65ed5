package infra

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newGormConfig translates driver errors so unique violations surface as
// gorm.ErrDuplicatedKey on both postgres and sqlite.
func newGormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

func SetupDB(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := newGormConfig()

	if cfg.DBName != "" {
		// sslmode=require in prod, disable elsewhere
		sslmode := "disable"
		if cfg.Env == "prod" {
			sslmode = "require"
		}

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s connect_timeout=10",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
			sslmode,
		)

		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Info("setup postgres database", zap.String("host", cfg.DBHost), zap.String("dbname", cfg.DBName))
		return db, nil
	}

	db, err := OpenSQLite(":memory:")
	if err != nil {
		return nil, err
	}
	log.Info("setup sqlite database (in-memory)")
	return db, nil
}

// OpenSQLite opens a sqlite database. In-memory databases are pinned to a
// single connection so every query sees the same data.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), newGormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// SetupTokenDB opens the sqlite database holding the token blacklist.
func SetupTokenDB(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := OpenSQLite(cfg.TokenDB)
	if err != nil {
		return nil, err
	}
	log.Info("setup token blacklist sqlite database", zap.String("path", cfg.TokenDB))
	return db, nil
}
