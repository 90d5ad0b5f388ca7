package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// StaticDir is served at the site root for GET and HEAD requests.
	StaticDir string `mapstructure:"static_dir" validate:"required"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
	// AutoMigrate applies pending migrations when the server starts.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"     validate:"required,min=32"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime" validate:"required,gt=0"`
	BcryptCost    int           `mapstructure:"bcrypt_cost"    validate:"required,gte=4,lte=31"`
	// CodeTTL is how long an emailed verification code stays valid.
	CodeTTL time.Duration `mapstructure:"code_ttl" validate:"required,gt=0"`
}

// MailConfig contains the outbound SMTP settings used for verification emails.
type MailConfig struct {
	Host     string `mapstructure:"host"     validate:"required,hostname|ip"`
	Port     int    `mapstructure:"port"     validate:"required,gt=0,lt=65536"`
	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password"`
	FromName string `mapstructure:"from_name"`
	// UseSSL selects implicit TLS (port 465). When false the sender upgrades
	// with STARTTLS if the server offers it.
	UseSSL  bool          `mapstructure:"use_ssl"`
	Timeout time.Duration `mapstructure:"timeout" validate:"required,gt=0"`
}
