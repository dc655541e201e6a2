package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ELECTROFY"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv         = "ELECTROFY_APP_ENV"
	EnvGatewayBaseURL = "ELECTROFY_GATEWAY_BASE_URL"
	EnvRedisURL       = "ELECTROFY_REDIS_URL"
)

type Config struct {
	App      AppConfig
	Gateway  GatewayConfig
	Redis    RedisConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Gateway.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ELECTROFY_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"ELECTROFY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ELECTROFY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type GatewayConfig struct {
	BaseURL       string        `envconfig:"ELECTROFY_GATEWAY_BASE_URL" required:"true"`
	Timeout       time.Duration `envconfig:"ELECTROFY_GATEWAY_TIMEOUT" default:"10s"`
	SessionHeader string        `envconfig:"ELECTROFY_GATEWAY_SESSION_HEADER" default:"X-Session-Id"`
}

func (g GatewayConfig) validate() error {
	parsed, err := url.Parse(g.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvGatewayBaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL", EnvGatewayBaseURL)
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("gateway timeout must be positive")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"ELECTROFY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ELECTROFY_REDIS_ADDR"`
	Password     string        `envconfig:"ELECTROFY_REDIS_PASSWORD"`
	DB           int           `envconfig:"ELECTROFY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ELECTROFY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ELECTROFY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ELECTROFY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ELECTROFY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ELECTROFY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CheckoutConfig struct {
	SlotTTLMinutes int     `envconfig:"ELECTROFY_CHECKOUT_SLOT_TTL_MINUTES" default:"30"`
	TaxRatePercent float64 `envconfig:"ELECTROFY_CHECKOUT_TAX_RATE_PERCENT" default:"18"`
}

// SlotTTL returns the checkout handoff slot TTL configured in minutes.
func (c CheckoutConfig) SlotTTL() time.Duration {
	if c.SlotTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.SlotTTLMinutes) * time.Minute
}
