package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/tournevent/otpravka/pkg/otpravka"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the CLI.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Otpravka API
	AccessToken       string        `envconfig:"OTPRAVKA_ACCESS_TOKEN"`
	UserAuthorization string        `envconfig:"OTPRAVKA_USER_AUTHORIZATION"`
	Login             string        `envconfig:"OTPRAVKA_LOGIN"`
	Password          string        `envconfig:"OTPRAVKA_PASSWORD"`
	BaseURL           string        `envconfig:"OTPRAVKA_BASE_URL" default:"https://otpravka-api.pochta.ru"`
	Timeout           time.Duration `envconfig:"OTPRAVKA_TIMEOUT" default:"30s"`
	Debug             bool          `envconfig:"OTPRAVKA_DEBUG" default:"false"`
	UseMock           bool          `envconfig:"OTPRAVKA_USE_MOCK" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"otpravka-cli"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that credentials are usable.
func (c *Config) Validate() error {
	if c.UseMock {
		return nil
	}
	if c.AccessToken == "" {
		return errors.New("OTPRAVKA_ACCESS_TOKEN is required")
	}
	if c.UserAuthorization == "" && (c.Login == "" || c.Password == "") {
		return errors.New("OTPRAVKA_USER_AUTHORIZATION or OTPRAVKA_LOGIN and OTPRAVKA_PASSWORD are required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("OTPRAVKA_TIMEOUT must be positive, got %s", c.Timeout)
	}
	return nil
}

// ClientConfig maps the settings onto the client's construction parameters.
// An explicit user authorization wins over login and password.
func (c *Config) ClientConfig() otpravka.Config {
	userAuth := c.UserAuthorization
	if userAuth == "" && c.Login != "" {
		userAuth = otpravka.BasicUserAuthorization(c.Login, c.Password)
	}
	token := c.AccessToken
	if c.UseMock {
		if token == "" {
			token = "mock"
		}
		if userAuth == "" {
			userAuth = "mock"
		}
	}
	return otpravka.Config{
		AccessToken:       token,
		UserAuthorization: userAuth,
		BaseURL:           c.BaseURL,
		Timeout:           c.Timeout,
	}
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.String("otpravka.base_url", c.BaseURL),
		attribute.Bool("otpravka.mock", c.UseMock),
	}
}
