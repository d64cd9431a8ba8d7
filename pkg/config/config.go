package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Env                     string        `env:"APP_ENV" env-default:"development"`
		Port                    int           `env:"PORT" env-default:"8080"`
		SentryDSN               string        `env:"SENTRY_DSN"`
		JWTSecret               string        `env:"JWT_SECRET" env-default:"supersecretjwtkey"`
		FirebaseCredentialsPath string        `env:"FIREBASE_CREDENTIALS_PATH"`
		FirebaseProjectID       string        `env:"FIREBASE_PROJECT_ID"`
		CommentRatePer          time.Duration `env:"COMMENT_RATE_PER" env-default:"10s"`
		CommentRateBurst        int           `env:"COMMENT_RATE_BURST" env-default:"5"`
		ReconcileInterval       time.Duration `env:"STATS_RECONCILE_INTERVAL" env-default:"5m"`
		RunMigrations           bool          `env:"RUN_MIGRATIONS" env-default:"true"`
	}
	Postgres struct {
		ConnStr         string        `env:"POSTGRES_CONN_STR" env-required:"true"`
		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" env-default:"20"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" env-default:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" env-default:"30m"`
	}
	Mongo struct {
		URI      string `env:"MONGO_URI" env-required:"true"`
		Database string `env:"MONGO_DATABASE" env-default:"daksh"`
	}
	S3 struct {
		Bucket          string `env:"AWS_BUCKET_NAME"`
		Region          string `env:"AWS_REGION" env-default:"ap-south-1"`
		AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
		Endpoint        string `env:"AWS_S3_ENDPOINT"`
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// IsProduction reports whether the service runs with production logging.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

var (
	once sync.Once
	cfg  *Config
	err  error
)

// New loads the configuration once per process. A .env file is optional.
func New() (*Config, error) {
	once.Do(func() {
		if loadErr := godotenv.Load(); loadErr != nil {
			log.Println("No .env file found, assuming environment variables are set.")
		}

		c := &Config{}
		if readErr := cleanenv.ReadEnv(c); readErr != nil {
			help, _ := cleanenv.GetDescription(c, nil)
			err = fmt.Errorf("failed to read configuration: %w\n%s", readErr, help)
			return
		}
		cfg = c
	})
	return cfg, err
}
