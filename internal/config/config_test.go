package config_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/garnizeh/skillswap/internal/config"
	"github.com/garnizeh/skillswap/pkg/assets"
)

func validConfig() *config.Config {
	return &config.Config{
		Addr:          ":8080",
		JWTSecret:     "strongsecret",
		APITimeout:    5 * time.Second,
		DatabasePath:  "skillswap.db",
		TokenDuration: 1 * time.Hour,
		BcryptCost:    10,
		Storage:       config.StorageConfig{Driver: config.DriverSQLite},
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	t.Setenv("SKILLSWAP_ENV", "production")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	t.Setenv("SKILLSWAP_ENV", "development")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_EmptySecretAlwaysFails(t *testing.T) {
	t.Setenv("SKILLSWAP_ENV", "development")

	cfg := validConfig()
	cfg.JWTSecret = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected Validate to fail for empty jwt secret")
	}
	if !strings.Contains(err.Error(), "jwt_secret") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BcryptCostRange(t *testing.T) {
	t.Setenv("SKILLSWAP_ENV", "production")

	for _, cost := range []int{0, 3, 32} {
		cfg := validConfig()
		cfg.BcryptCost = cost
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected Validate to fail for bcrypt cost %d", cost)
		}
	}
}

func TestValidate_Storage(t *testing.T) {
	t.Setenv("SKILLSWAP_ENV", "production")

	cfg := validConfig()
	cfg.Storage.Driver = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for unknown driver")
	}

	cfg = validConfig()
	cfg.Storage.Driver = config.DriverMongo
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for mongo driver without uri")
	}

	cfg.Storage.MongoURI = "mongodb://localhost:27017"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed unexpectedly: %v", err)
	}
	if cfg.Storage.MongoDatabase != "skillswap" {
		t.Fatalf("expected default mongo database, got %q", cfg.Storage.MongoDatabase)
	}
}

func TestValidate_AssetDefaultsPopulated(t *testing.T) {
	t.Setenv("SKILLSWAP_ENV", "production")

	cfg := validConfig()
	cfg.Assets.UploadURL = "http://assets.local/upload"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed unexpectedly: %v", err)
	}
	if cfg.Assets.Timeout <= 0 {
		t.Fatalf("expected Assets.Timeout to be > 0")
	}
	if cfg.Assets.MaxBytes <= 0 {
		t.Fatalf("expected Assets.MaxBytes to be > 0")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"SKILLSWAP_ADDR", "SKILLSWAP_JWT_SECRET", "SKILLSWAP_DATABASE_PATH", "SKILLSWAP_STORAGE_DRIVER", "SKILLSWAP_CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error for empty path: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":8080")
	}
	if cfg.JWTSecret != "supersecretkey" {
		t.Fatalf("unexpected JWTSecret: got %q", cfg.JWTSecret)
	}
	if cfg.DatabasePath != "skillswap.db" {
		t.Fatalf("unexpected DatabasePath: got %q", cfg.DatabasePath)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 15*time.Second)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Fatalf("unexpected TokenDuration: got %v want %v", cfg.TokenDuration, 24*time.Hour)
	}
	if cfg.Storage.Driver != config.DriverSQLite {
		t.Fatalf("unexpected storage driver %q", cfg.Storage.Driver)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORS.AllowedOrigins)
	}
	want := assets.DefaultConfig()
	if cfg.Assets.Timeout != want.Timeout || cfg.Assets.MaxBytes != want.MaxBytes {
		t.Fatalf("unexpected asset defaults %+v", cfg.Assets)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SKILLSWAP_ADDR", ":7070")
	t.Setenv("SKILLSWAP_CORS_ORIGINS", "http://localhost:3000, http://localhost:5173")
	t.Setenv("SKILLSWAP_DEBUG", "true")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("unexpected Addr %q", cfg.Addr)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug enabled from env")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	f, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	content := []byte("addr: \":9090\"\njwt_secret: \"filekey\"\ntimeout: \"30s\"\ndatabase_path: \"test.db\"\ntoken_duration: \"2h\"\nstorage:\n  driver: mongo\n  mongo_uri: \"mongodb://db:27017\"\nassets:\n  upload_url: \"http://assets/upload\"\n")
	if err := os.WriteFile(f.Name(), content, 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := config.LoadConfig(f.Name())
	if err != nil {
		t.Fatalf("LoadConfig returned error for file: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":9090")
	}
	if cfg.JWTSecret != "filekey" {
		t.Fatalf("unexpected JWTSecret: got %q want %q", cfg.JWTSecret, "filekey")
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 30*time.Second)
	}
	if cfg.TokenDuration != 2*time.Hour {
		t.Fatalf("unexpected TokenDuration: got %v want %v", cfg.TokenDuration, 2*time.Hour)
	}
	if cfg.Storage.Driver != config.DriverMongo || cfg.Storage.MongoURI != "mongodb://db:27017" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Assets.UploadURL != "http://assets/upload" {
		t.Fatalf("unexpected assets url %q", cfg.Assets.UploadURL)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := config.LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	f, err := os.CreateTemp("", "bad-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	if err := os.WriteFile(f.Name(), []byte("::: not yaml :::"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(f.Name()); err == nil {
		t.Fatalf("expected YAML decode error, got nil")
	}
}
