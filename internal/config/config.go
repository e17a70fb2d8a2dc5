package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	Storage    Storage    `yaml:"storage"`
	Database   Database   `yaml:"database"`
	Auth       Auth       `yaml:"auth"`
	HTTPServer HTTPServer `yaml:"http_server"`
}

type Storage struct {
	// Driver selects the backing store: "postgres" or "memory".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"-" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"ticketgate"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type Auth struct {
	Secret string `yaml:"-" env:"JWT_SECRET" env-required:"true"`
	// TokenTTL is the validity window of issued session tokens.
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"100m"`
	// BlacklistRetention is how long revoked tokens are kept. It must be
	// at least TokenTTL so a revoked token cannot be pruned before its
	// natural expiry; MustLoad clamps it up when misconfigured.
	BlacklistRetention time.Duration `yaml:"blacklist_retention" env:"BLACKLIST_RETENTION" env-default:"200m"`
	BlacklistSweep     time.Duration `yaml:"blacklist_sweep" env:"BLACKLIST_SWEEP_INTERVAL" env-default:"60m"`
	BcryptCost         int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	if cfg.Auth.BlacklistRetention < cfg.Auth.TokenTTL {
		cfg.Auth.BlacklistRetention = cfg.Auth.TokenTTL
	}

	return &cfg
}
