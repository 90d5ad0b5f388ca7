package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. LEXI_DATABASE_URL for database.url.
const EnvPrefix = "LEXI"

// keys lists every configuration key so that viper can resolve it from the
// environment even when no default or config file value exists.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.static_dir",
	"database.url",
	"database.auto_migrate",
	"auth.jwt_secret",
	"auth.token_lifetime",
	"auth.bcrypt_cost",
	"auth.code_ttl",
	"mail.host",
	"mail.port",
	"mail.username",
	"mail.password",
	"mail.from_name",
	"mail.use_ssl",
	"mail.timeout",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config.yaml in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.token_lifetime", "24h")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.code_ttl", "10m")
	v.SetDefault("mail.port", 465)
	v.SetDefault("mail.from_name", "LexiLearn")
	v.SetDefault("mail.use_ssl", true)
	v.SetDefault("mail.timeout", "30s")
}
