package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultSecretKey = "your-secret-key-change-in-production"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
	Auth     AuthConfig     `mapstructure:",squash"`
	AI       AIConfig       `mapstructure:",squash"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"app_port" validate:"required,numeric"`
	GinMode     string   `mapstructure:"gin_mode" validate:"required,oneof=debug release test"`
	LogLevel    string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat   string   `mapstructure:"log_format" validate:"required,oneof=text json"`
	Version     string   `mapstructure:"app_version"`
	CORSOrigins []string `mapstructure:"-"`
}

type DatabaseConfig struct {
	Driver                 string `mapstructure:"db_driver" validate:"required,oneof=mysql postgres sqlite"`
	URL                    string `mapstructure:"database_url"`
	Host                   string `mapstructure:"db_host"`
	Port                   string `mapstructure:"db_port"`
	User                   string `mapstructure:"db_user"`
	Password               string `mapstructure:"db_password"`
	Name                   string `mapstructure:"db_name" validate:"required_without=URL"`
	SSLMode                string `mapstructure:"db_sslmode"`
	PoolSize               int    `mapstructure:"db_pool_size" validate:"gte=1"`
	MaxOverflow            int    `mapstructure:"db_max_overflow" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"db_conn_max_lifetime_minutes" validate:"gte=0"`
	LogLevel               string `mapstructure:"-"`
}

type AuthConfig struct {
	SecretKey                string `mapstructure:"secret_key" validate:"required"`
	Algorithm                string `mapstructure:"algorithm" validate:"required,oneof=HS256 HS384 HS512"`
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes" validate:"gt=0"`
}

type AIConfig struct {
	Provider     string `mapstructure:"ai_provider" validate:"required,oneof=gemini openai"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model" validate:"required"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model" validate:"required"`
}

// APIKey returns the credential of the selected provider.
func (c AIConfig) APIKey() string {
	if c.Provider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// APIKeyName returns the environment variable name holding the selected provider's credential.
func (c AIConfig) APIKeyName() string {
	if c.Provider == "openai" {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// UsesDefaultSecret reports whether tokens are signed with the development key.
func (c AuthConfig) UsesDefaultSecret() bool {
	return c.SecretKey == defaultSecretKey
}

var defaults = map[string]any{
	"app_port":                     "8080",
	"gin_mode":                     "debug",
	"log_level":                    "info",
	"log_format":                   "text",
	"app_version":                  "1.0.0",
	"cors_origins":                 "http://localhost:3000,http://localhost:5173",
	"db_driver":                    "mysql",
	"database_url":                 "",
	"db_host":                      "localhost",
	"db_port":                      "3306",
	"db_user":                      "taskuser",
	"db_password":                  "taskpassword",
	"db_name":                      "task_management",
	"db_sslmode":                   "disable",
	"db_pool_size":                 5,
	"db_max_overflow":              10,
	"db_conn_max_lifetime_minutes": 30,
	"secret_key":                   defaultSecretKey,
	"algorithm":                    "HS256",
	"access_token_expire_minutes":  30,
	"ai_provider":                  "gemini",
	"gemini_api_key":               "",
	"gemini_model":                 "gemini-2.0-flash",
	"openai_api_key":               "",
	"openai_model":                 "gpt-4o",
}

// Load reads configuration from .env, an optional CONFIG_FILE and the environment.
// Environment variables take precedence over the config file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.Server.CORSOrigins = splitList(v.GetString("cors_origins"))
	cfg.Database.LogLevel = cfg.Server.LogLevel

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct constraints.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
