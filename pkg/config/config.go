package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store      StoreConfig
	JWT        JWTConfig
	Auth       AuthConfig
	Enrollment EnrollmentConfig
	Exports    ExportsConfig
	CORS       CORSConfig
	Log        LogConfig
}

// StoreConfig locates the writable document file and the bundled seed copied
// onto it on first run.
type StoreConfig struct {
	DataPath string
	SeedPath string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthConfig selects how stored credentials are compared.
type AuthConfig struct {
	PasswordScheme string // "plaintext" or "bcrypt"
}

// EnrollmentConfig tunes registration invariants.
type EnrollmentConfig struct {
	EnforceCapacity bool
}

// ExportsConfig configures history export rendering.
type ExportsConfig struct {
	StorageDir string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		DataPath: v.GetString("STORE_DATA_PATH"),
		SeedPath: v.GetString("STORE_SEED_PATH"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.Auth = AuthConfig{
		PasswordScheme: v.GetString("AUTH_PASSWORD_SCHEME"),
	}

	cfg.Enrollment = EnrollmentConfig{
		EnforceCapacity: v.GetBool("ENROLLMENT_ENFORCE_CAPACITY"),
	}

	cfg.Exports = ExportsConfig{
		StorageDir: v.GetString("EXPORTS_STORAGE_DIR"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_DATA_PATH", "./data/data.json")
	v.SetDefault("STORE_SEED_PATH", "./data/seed.json")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "course-registration-api")

	v.SetDefault("AUTH_PASSWORD_SCHEME", "plaintext")

	v.SetDefault("ENROLLMENT_ENFORCE_CAPACITY", true)

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
