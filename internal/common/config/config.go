package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	SessionDriverFile   = "file"
	SessionDriverRedis  = "redis"
	SessionDriverMemory = "memory"
)

type Config struct {
	Debug   bool   `env:"DEBUG" envDefault:"false"`
	LogFile string `env:"LOG_FILE" envDefault:"messenger.log"`

	Gateway struct {
		BaseURL     string        `env:"GATEWAY_BASE_URL" envDefault:"http://localhost:8080"`
		AuthURL     string        `env:"GATEWAY_AUTH_URL"`
		UsersURL    string        `env:"GATEWAY_USERS_URL"`
		ContactsURL string        `env:"GATEWAY_CONTACTS_URL"`
		MessagesURL string        `env:"GATEWAY_MESSAGES_URL"`
		Timeout     time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`
	}

	Poll struct {
		Interval time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
	}

	Session struct {
		Driver string `env:"SESSION_DRIVER" envDefault:"file"` // file, redis, memory
		Path   string `env:"SESSION_PATH"`
		Key    string `env:"SESSION_KEY" envDefault:"messenger:session:user"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	// Локальный шлюз для разработки (cmd/devgateway)
	Server struct {
		Port          int    `env:"PORT" envDefault:"8080"`
		Origin        string `env:"ORIGIN" envDefault:"*"`
		AdminPhone    string `env:"DEV_ADMIN_PHONE" envDefault:"+70000000000"`
		AdminPassword string `env:"DEV_ADMIN_PASSWORD" envDefault:"admin"`
	}
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	// .env необязателен: в окружении переменные могут быть заданы напрямую
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Session.Path == "" {
		cfg.Session.Path = DefaultSessionPath()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	switch c.Session.Driver {
	case SessionDriverFile, SessionDriverRedis, SessionDriverMemory:
	default:
		return fmt.Errorf("unknown session driver %q", c.Session.Driver)
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.Poll.Interval)
	}
	if c.Gateway.Timeout < 0 {
		return fmt.Errorf("gateway timeout cannot be negative")
	}
	for name, raw := range map[string]string{
		"auth":     c.AuthURL(),
		"users":    c.UsersURL(),
		"contacts": c.ContactsURL(),
		"messages": c.MessagesURL(),
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s endpoint %q", name, raw)
		}
	}
	return nil
}

func (c *Config) AuthURL() string     { return c.endpoint(c.Gateway.AuthURL, "auth") }
func (c *Config) UsersURL() string    { return c.endpoint(c.Gateway.UsersURL, "users") }
func (c *Config) ContactsURL() string { return c.endpoint(c.Gateway.ContactsURL, "contacts") }
func (c *Config) MessagesURL() string { return c.endpoint(c.Gateway.MessagesURL, "messages") }

// RedisAddr возвращает host:port
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) endpoint(override, path string) string {
	if override != "" {
		return override
	}
	return strings.TrimRight(c.Gateway.BaseURL, "/") + "/" + path
}

// DefaultSessionPath указывает на файл сессии в пользовательском каталоге конфигурации.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "messenger", "session.json")
}
