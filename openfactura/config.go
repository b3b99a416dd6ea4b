package openfactura

import (
	"time"

	"github.com/go-faster/errors"

	"github.com/openfactura/go-openfactura-client/openfactura/util"
)

// Config is the explicit client configuration. No package-level state: build a
// Config, hand it to New, throw both away when done.
type Config struct {
	APIKey      string
	Environment Environment
	// Timeout for each request, defaults to api.DefaultTimeout when zero.
	Timeout time.Duration
	// BaseURL overrides the environment's URL, mainly for test servers.
	BaseURL string
}

// ConfigFromEnv reads OF_API_KEY (required), OF_ENV (production or
// development, defaults to development), OF_TIMEOUT (Go duration syntax) and
// OF_BASE_URL.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		APIKey:  util.GetEnvOrFailed("OF_API_KEY"),
		BaseURL: util.GetEnvOrDefault("OF_BASE_URL", ""),
	}

	if err := cfg.Environment.UnmarshalText([]byte(util.GetEnvOrDefault("OF_ENV", "development"))); err != nil {
		return Config{}, err
	}

	if raw := util.GetEnvOrDefault("OF_TIMEOUT", ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, errors.Wrap(err, "parse OF_TIMEOUT")
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return c.Environment.BaseURL()
}
