package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	APP struct {
		Name            string        `env:"SERVICE_NAME" env-default:"studentmanagerapi"`
		Host            string        `env:"SERVICE_HOST" env-default:"0.0.0.0"`
		Port            string        `env:"SERVICE_PORT" env-default:"3000"`
		Env             string        `env:"SERVICE_ENV" env-default:"development"`
		JWTSecret       string        `env:"SERVICE_JWT_SECRET" env-required:"true"`
		RequestTimeout  time.Duration `env:"SERVICE_REQUEST_TIMEOUT" env-default:"5s"`
		ShutdownTimeout time.Duration `env:"SERVICE_SHUTDOWN_TIMEOUT" env-default:"5s"`
	}
	DB struct {
		User     string `env:"POSTGRES_USER"`
		Password string `env:"POSTGRES_PASSWORD"`
		Name     string `env:"POSTGRES_DB"`
		Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
		Port     string `env:"POSTGRES_PORT" env-default:"5432"`
		SSLMode  string `env:"POSTGRES_SSLMODE" env-default:"disable"`
		MaxConns int32  `env:"POSTGRES_MAX_CONNS" env-default:"10"`
		Migrate  bool   `env:"DB_MIGRATE" env-default:"true"`

		QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" env-default:"5s"`
	}
	MQ struct {
		Enabled      bool   `env:"MQ_ENABLED" env-default:"false"`
		User         string `env:"RABBITMQ_USER"`
		Password     string `env:"RABBITMQ_PASSWORD"`
		Vhost        string `env:"RABBITMQ_VHOST" env-default:"/"`
		Host         string `env:"RABBITMQ_HOST" env-default:"localhost"`
		AmqpPort     string `env:"RABBITMQ_AMQP_PORT" env-default:"5672"`
		Exchange     string `env:"RABBITMQ_EXCHANGE" env-default:"students"`
		ExchangeType string `env:"RABBITMQ_EXCHANGE_TYPE" env-default:"topic"`
		QueueName    string `env:"RABBITMQ_QUEUE_NAME" env-default:"students.audit"`
	}
	Redis struct {
		Enabled  bool   `env:"REDIS_ENABLED" env-default:"false"`
		Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" env-default:"0"`
	}
	RateLimit struct {
		Requests int           `env:"RATE_LIMIT_AUTH_REQUESTS" env-default:"50"`
		Window   time.Duration `env:"RATE_LIMIT_AUTH_WINDOW" env-default:"1m"`
	}
	Auth struct {
		RolesEnabled bool `env:"AUTH_ROLES_ENABLED" env-default:"true"`
	}

	Config struct {
		App       APP
		DB        DB
		MQ        MQ
		Redis     Redis
		RateLimit RateLimit
		Auth      Auth
	}
)

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env config: %w", err)
	}
	// env-required is satisfied by a present but empty variable
	if cfg.App.JWTSecret == "" {
		return Config{}, fmt.Errorf("SERVICE_JWT_SECRET must not be empty")
	}
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
		return Config{}, fmt.Errorf("invalid rate limit config: requests and window must be positive")
	}

	return cfg, nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     c.DB.Host + ":" + c.DB.Port,
		Path:     c.DB.Name,
		RawQuery: url.Values{"sslmode": []string{c.DB.SSLMode}}.Encode(),
	}
	return u.String(), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) IsProduction() bool {
	switch c.App.Env {
	case "release", "prod", "production":
		return true
	}
	return false
}
