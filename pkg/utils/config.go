package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Media     MediaConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name       string
	Port       string
	Debug      bool
	LogPath    string
	BcryptCost int
	// TrustProxy honors X-Forwarded-For and X-Real-IP. Enable only behind a
	// reverse proxy that overwrites those headers.
	TrustProxy bool
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	CookieName  string
	ExpiryHours int
	Secure      bool
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.ExpiryHours) * time.Hour
}

type MediaConfig struct {
	Path string
	URL  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type RateLimitConfig struct {
	Limit         int
	WindowSeconds int
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "ARTO")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BCRYPT_COST", 12)
	viper.SetDefault("TRUST_PROXY", false)
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_COOKIE", "arto_session")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24*14)
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("MEDIA_PATH", "media/")
	viper.SetDefault("MEDIA_URL", "/media/")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT", 20)
	viper.SetDefault("RATE_WINDOW_SECONDS", 60)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// .env is optional; environment variables always win
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Port:       viper.GetString("PORT"),
			Debug:      viper.GetBool("DEBUG"),
			TrustProxy: viper.GetBool("TRUST_PROXY"),
			LogPath:    viper.GetString("LOG_PATH"),
			BcryptCost: viper.GetInt("BCRYPT_COST"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(viper.GetString("DB_DRIVER")),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			CookieName:  viper.GetString("SESSION_COOKIE"),
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
			Secure:      viper.GetBool("COOKIE_SECURE"),
		},
		Media: MediaConfig{
			Path: viper.GetString("MEDIA_PATH"),
			URL:  viper.GetString("MEDIA_URL"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Limit:         viper.GetInt("RATE_LIMIT"),
			WindowSeconds: viper.GetInt("RATE_WINDOW_SECONDS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
