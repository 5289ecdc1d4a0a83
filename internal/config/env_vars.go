package config

import (
	"fmt"
	"strings"
)

const envProduction = "PROD"

type EnvVars struct {
	Port          string `envconfig:"PORT" default:"5000"`
	AppName       string `envconfig:"APP_NAME" default:"LinkedIn Stats"`
	Env           string `envconfig:"ENV" default:"DEV"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	ClientBaseURL string `envconfig:"CLIENT_BASE_URL" default:"http://localhost:3000"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "5000"
	}
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// GetClientBaseURL returns the base URL of the single-page client
// (e.g., "https://stats.example.com"). It is the CORS origin and the target of
// the post-OAuth redirect.
func (e EnvVars) GetClientBaseURL() string {
	return e.ClientBaseURL
}

func (e EnvVars) IsProduction() bool {
	return e.GetEnv() == envProduction
}
