package otpravka

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Version is reported in the User-Agent header.
const Version = "1.0.0"

const (
	// DefaultBaseURL is the production endpoint of the service.
	DefaultBaseURL = "https://otpravka-api.pochta.ru"
	defaultTimeout = 30 * time.Second
	userAgent      = "otpravka-go/" + Version
)

// Config holds client construction parameters.
type Config struct {
	// AccessToken is the application token. It is sent as
	// "AccessToken <token>" unless it already carries a scheme.
	AccessToken string
	// UserAuthorization is the X-User-Authorization value: either a full
	// "Basic ..." header or the bare base64 of "login:password".
	// BasicUserAuthorization builds it from credentials.
	UserAuthorization string
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Timeout bounds a single HTTP exchange when the client builds its own
	// http.Client. Defaults to 30s.
	Timeout time.Duration
}

// HTTPDoer is the transport the client sends requests through.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a stateless facade over the otpravka REST API.
// It is safe for concurrent use.
type Client struct {
	baseURL  string
	headers  http.Header
	http     HTTPDoer
	validate *validator.Validate
	logger   *otelzap.Logger
	tracer   trace.Tracer
	metrics  *Metrics
	debug    bool
}

// Option configures a Client during construction in New.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client. Auth headers are still
// attached by the client itself.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(logger *otelzap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used to open one span per operation.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithDebugLogging dumps every request and response at debug level through
// the configured logger. Dumps include credentials; keep it off in production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) {
		c.debug = enabled
	}
}

// New creates a Client. AccessToken and UserAuthorization are required.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, &APIError{Kind: KindValidation, Operation: "New", Message: "access token is required"}
	}
	if strings.TrimSpace(cfg.UserAuthorization) == "" {
		return nil, &APIError{Kind: KindValidation, Operation: "New", Message: "user authorization is required"}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	headers := make(http.Header)
	headers.Set("Authorization", withScheme("AccessToken", cfg.AccessToken))
	headers.Set("X-User-Authorization", withScheme("Basic", cfg.UserAuthorization))
	headers.Set("Accept", "application/json;charset=UTF-8")
	headers.Set("User-Agent", userAgent)

	c := &Client{
		baseURL:  baseURL,
		headers:  headers,
		http:     &http.Client{Timeout: timeout},
		validate: newValidator(),
		logger:   otelzap.New(zap.NewNop()),
		tracer:   noop.NewTracerProvider().Tracer("otpravka"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.debug {
		c.http = &debugDoer{base: c.http, logger: c.logger}
	}
	return c, nil
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BasicUserAuthorization builds an X-User-Authorization value from login and password.
func BasicUserAuthorization(login, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(login+":"+password))
}

// withScheme prefixes value with scheme unless it already has one.
func withScheme(scheme, value string) string {
	value = strings.TrimSpace(value)
	if strings.Contains(value, " ") {
		return value
	}
	return scheme + " " + value
}

// reject records a locally rejected call and returns err unchanged.
func (c *Client) reject(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.logger.Debug("Request rejected",
			zap.String("operation", apiErr.Operation),
			zap.String("reason", apiErr.Message),
		)
		c.metrics.observeError(apiErr.Operation, apiErr.Kind)
	}
	return err
}
