package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config carrega a configuração do serviço a partir do ambiente.
type Config struct {
	// HTTP
	Port string

	// Upstream
	GoogleAppsScriptURL string
	UpstreamTimeout     time.Duration

	// Upload
	MaxUploadBytes int64
}

// Load lê as variáveis de ambiente com seus defaults.
func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", "7071"),
		GoogleAppsScriptURL: getEnv("GOOGLE_APPS_SCRIPT_URL", ""),
		UpstreamTimeout:     getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		MaxUploadBytes:      10 * 1024 * 1024,
	}
}

// Validate valida a configuração e devolve um erro descritivo quando algo
// está faltando ou malformado.
func (c *Config) Validate() error {
	var errs []string

	if c.GoogleAppsScriptURL == "" {
		errs = append(errs, "GOOGLE_APPS_SCRIPT_URL não configurada")
	} else if u, err := url.Parse(c.GoogleAppsScriptURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("GOOGLE_APPS_SCRIPT_URL inválida: %q", c.GoogleAppsScriptURL))
	}

	if c.Port == "" {
		errs = append(errs, "PORT vazia")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuração inválida: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
