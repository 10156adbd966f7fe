package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	SwaggerHost string
	LogLevel    string
	ResetDB     bool

	// JWTAccessSecret and JWTRefreshSecret must differ.
	JWTAccessSecret  string
	JWTRefreshSecret string

	// SessionRevocation enables the Redis renewal-token denylist.
	SessionRevocation bool
	CookieSecure      bool
	CORSOrigins       []string
}

// Load builds Config from environment with sensible defaults. Values from an
// optional .env file are applied only when the variable is not already set.
func Load() (*Config, error) {
	// A missing .env is fine; godotenv.Load never overrides set variables.
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppEnv:            v.GetString("app_env"),
		ServerPort:        v.GetString("server_port"),
		MySQLDSN:          v.GetString("mysql_dsn"),
		RedisAddr:         v.GetString("redis_addr"),
		RedisDB:           v.GetInt("redis_db"),
		RedisPass:         v.GetString("redis_password"),
		SwaggerHost:       v.GetString("swagger_host"),
		LogLevel:          v.GetString("log_level"),
		ResetDB:           v.GetBool("reset_db"),
		JWTAccessSecret:   v.GetString("jwt_access_secret"),
		JWTRefreshSecret:  v.GetString("jwt_refresh_secret"),
		SessionRevocation: v.GetBool("session_revocation"),
		CookieSecure:      v.GetBool("cookie_secure"),
		CORSOrigins:       splitList(v.GetString("cors_origins")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("server_port", "8080")
	v.SetDefault("mysql_dsn", "user:password@tcp(localhost:3306)/taskhub?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_password", "")
	v.SetDefault("swagger_host", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("reset_db", false)
	v.SetDefault("jwt_access_secret", "")
	v.SetDefault("jwt_refresh_secret", "")
	v.SetDefault("session_revocation", false)
	v.SetDefault("cookie_secure", true)
	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:5173")
}

// Validate ensures the signing configuration is usable.
func (c *Config) Validate() error {
	if c.JWTAccessSecret == "" || c.JWTRefreshSecret == "" {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.ServerPort == "" {
		return errors.New("SERVER_PORT is required")
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
