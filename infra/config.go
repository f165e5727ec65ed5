package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env  string `envconfig:"ENV" default:"dev"`
	Port string `envconfig:"PORT" default:"4000"`

	// Postgres is used when DBName is set, otherwise an in-memory sqlite DB.
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	TokenDB    string `envconfig:"TOKEN_DB_PATH" default:"token_blacklist.db"`

	AutoMigrate bool `envconfig:"AUTO_MIGRATE" default:"true"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"168h"`

	AdminName     string `envconfig:"ADMIN_NAME" default:"Platform Administrator"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	AdminAddress  string `envconfig:"ADMIN_ADDRESS"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	LoginRatePerSecond float64 `envconfig:"LOGIN_RATE_PER_SECOND" default:"1"`
	LoginRateBurst     int     `envconfig:"LOGIN_RATE_BURST" default:"5"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"store_rating_events"`

	TokenCleanupSpec string `envconfig:"TOKEN_CLEANUP_SPEC" default:"@every 1h"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS"`
	// Client IPs are read from X-Forwarded-For only behind these proxies.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

// LoadConfig reads the given .env files (".env" when none are named) into
// the environment and then decodes it. Missing files are skipped; variables
// already set in the environment win over file values.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
