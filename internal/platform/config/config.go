package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg is the global configuration loaded at startup.
var Cfg *Config

// Config mirrors the structure of config.yaml.
type Config struct {
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Game       GameConfig     `mapstructure:"game"`
	Mail       MailConfig     `mapstructure:"mail"`
	Admin      AdminConfig    `mapstructure:"admin"`
	AppBaseURL string         `mapstructure:"appBaseUrl"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig holds the CORS settings.
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig selects and configures the relational store.
type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"` // "sqlite" or "postgres"
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// SqliteConfig holds the sqlite settings.
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig holds the postgres connection settings.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwtSecret"`
	AccessTokenTTL  time.Duration `mapstructure:"accessTokenTtl"`
	RefreshTokenTTL time.Duration `mapstructure:"refreshTokenTtl"`
	CookieName      string        `mapstructure:"cookieName"`
	CookieDomain    string        `mapstructure:"cookieDomain"`
	CookieSecure    bool          `mapstructure:"cookieSecure"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	Timezone         string `mapstructure:"timezone"`
	NoRepeatDays     int    `mapstructure:"noRepeatDays"`
	DrawHour         int    `mapstructure:"drawHour"`
	StatsSyncMinutes int    `mapstructure:"statsSyncMinutes"`
}

// MailConfig holds the verification-mail transport settings.
type MailConfig struct {
	Transport string `mapstructure:"transport"` // "console" or "smtp"
	From      string `mapstructure:"from"`
	SMTPHost  string `mapstructure:"smtpHost"`
	SMTPPort  int    `mapstructure:"smtpPort"`
	SMTPUser  string `mapstructure:"smtpUser"`
	SMTPPass  string `mapstructure:"smtpPass"`
}

// AdminConfig holds the seed admin account.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// LoadConfig locates and parses config.yaml, applying environment overrides.
// A .env file, when present, is loaded first so local development can keep
// secrets out of the yaml file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env cover the full surface.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	Cfg = &cfg
	return Cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite.path", "charadle.db")
	v.SetDefault("auth.accessTokenTtl", 2*time.Hour)
	v.SetDefault("auth.refreshTokenTtl", 30*24*time.Hour)
	v.SetDefault("auth.cookieName", "access-token")
	v.SetDefault("game.timezone", "America/Fortaleza")
	v.SetDefault("game.noRepeatDays", 30)
	v.SetDefault("game.drawHour", 0)
	v.SetDefault("game.statsSyncMinutes", 60)
	v.SetDefault("mail.transport", "console")
	v.SetDefault("mail.from", "no-reply@charadle.app")
	v.SetDefault("appBaseUrl", "http://localhost:8080")
	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.password", "admin123")
}
