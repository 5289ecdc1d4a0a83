package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config interface {
	EnvConfig
	CorsConfig
	LinkedInConfig
	SecurityConfig
	StoreConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetClientBaseURL() string
	IsProduction() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type mainConfig struct {
	EnvVars
	Cors
	LinkedIn
	Security
	Stores
}

// New reads the configuration from the environment.
func New() (Config, error) {
	c := &mainConfig{}
	if err := envconfig.Process("", c); err != nil {
		return nil, errors.Wrap(err, "error reading configuration from environment")
	}
	c.ClientBaseURL = strings.TrimRight(c.ClientBaseURL, "/")
	return c, nil
}

// GetAllowedOrigins is the client base URL plus any extra configured origins.
func (c *mainConfig) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	if c.ClientBaseURL != "" {
		origins[c.ClientBaseURL] = nullValue{}
	}
	for _, o := range c.ExtraOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}
