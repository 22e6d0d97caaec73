package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/garnizeh/skillswap/pkg/assets"
)

const insecureDefaultSecret = "supersecretkey"

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Env            string        `yaml:"env"`
	Addr           string        `yaml:"addr"`
	JWTSecret      string        `yaml:"jwt_secret"`
	APITimeout     time.Duration `yaml:"timeout"`
	DatabasePath   string        `yaml:"database_path"`
	TokenDuration  time.Duration `yaml:"token_duration"`
	BcryptCost     int           `yaml:"bcrypt_cost"`
	MigrateOnStart bool          `yaml:"migrate_on_start"`
	Debug          bool          `yaml:"debug"`
	LogLevel       string        `yaml:"log_level"`
	Storage        StorageConfig `yaml:"storage"`
	Assets         assets.Config `yaml:"assets"`
	CORS           CORSConfig    `yaml:"cors"`
}

// StorageConfig selects the document backend for users, skills, offerings,
// chats and messages. Requests and reports always live in process memory.
type StorageConfig struct {
	Driver        string `yaml:"driver"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func LoadConfig(path string) (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("SKILLSWAP_ENV", "production"),
		Addr:           getEnv("SKILLSWAP_ADDR", ":8080"),
		JWTSecret:      getEnv("SKILLSWAP_JWT_SECRET", insecureDefaultSecret),
		APITimeout:     15 * time.Second,
		DatabasePath:   getEnv("SKILLSWAP_DATABASE_PATH", "skillswap.db"),
		TokenDuration:  24 * time.Hour,
		BcryptCost:     bcrypt.DefaultCost,
		MigrateOnStart: getEnvBool("SKILLSWAP_MIGRATE_ON_START", true),
		Debug:          getEnvBool("SKILLSWAP_DEBUG", false),
		LogLevel:       getEnv("SKILLSWAP_LOG_LEVEL", "info"),
		Storage: StorageConfig{
			Driver:        getEnv("SKILLSWAP_STORAGE_DRIVER", DriverSQLite),
			MongoURI:      os.Getenv("SKILLSWAP_MONGO_URI"),
			MongoDatabase: getEnv("SKILLSWAP_MONGO_DATABASE", "skillswap"),
		},
		Assets: assets.Config{
			UploadURL:    os.Getenv("SKILLSWAP_ASSETS_UPLOAD_URL"),
			UploadPreset: os.Getenv("SKILLSWAP_ASSETS_UPLOAD_PRESET"),
			APIKey:       os.Getenv("SKILLSWAP_ASSETS_API_KEY"),
			Timeout:      assets.DefaultConfig().Timeout,
			MaxBytes:     assets.DefaultConfig().MaxBytes,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("SKILLSWAP_CORS_ORIGINS", "*")),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that would silently weaken authentication
// or leave a required backend unreachable.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	} else if c.JWTSecret == insecureDefaultSecret && !c.IsDevelopment() {
		errs = append(errs, errors.New("jwt_secret uses the insecure default outside development"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.TokenDuration <= 0 {
		errs = append(errs, errors.New("token_duration must be positive"))
	}
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			errs = append(errs, errors.New("database_path is required for the sqlite driver"))
		}
	case DriverMongo:
		if c.Storage.MongoURI == "" {
			errs = append(errs, errors.New("storage.mongo_uri is required for the mongo driver"))
		}
		if c.Storage.MongoDatabase == "" {
			c.Storage.MongoDatabase = "skillswap"
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.Assets.UploadURL != "" && c.Assets.Timeout <= 0 {
		c.Assets.Timeout = assets.DefaultConfig().Timeout
	}
	if c.Assets.MaxBytes <= 0 {
		c.Assets.MaxBytes = assets.DefaultConfig().MaxBytes
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the process runs in development mode, either
// from the config file or from SKILLSWAP_ENV.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || os.Getenv("SKILLSWAP_ENV") == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
