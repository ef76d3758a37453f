package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix            = "AUTONEXGEN"
	defaultHTTPAddress   = "0.0.0.0:8080"
	defaultDatabasePath  = "autonexgen.db"
	defaultLogLevel      = "info"
	defaultNotifierDelay = 10 * time.Second
	defaultChatModel     = "gpt-4o-mini"
	defaultAdminTokenTTL = 30
)

// AppConfig captures runtime configuration for the site server.
type AppConfig struct {
	HTTPAddress        string
	DatabasePath       string
	LogLevel           string
	NotifierURL        string
	NotifierTimeout    time.Duration
	ChatBaseURL        string
	ChatAPIKey         string
	ChatModel          string
	AdminAccessSecret  string
	AdminSigningSecret string
	AdminTokenTTL      time.Duration
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("notifier.timeout", defaultNotifierDelay)
	configViper.SetDefault("chat.model", defaultChatModel)
	configViper.SetDefault("admin.token_ttl_minutes", defaultAdminTokenTTL)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:        configViper.GetString("http.address"),
		DatabasePath:       configViper.GetString("database.path"),
		LogLevel:           configViper.GetString("log.level"),
		NotifierURL:        configViper.GetString("notifier.url"),
		NotifierTimeout:    configViper.GetDuration("notifier.timeout"),
		ChatBaseURL:        configViper.GetString("chat.base_url"),
		ChatAPIKey:         configViper.GetString("chat.api_key"),
		ChatModel:          configViper.GetString("chat.model"),
		AdminAccessSecret:  configViper.GetString("admin.access_secret"),
		AdminSigningSecret: configViper.GetString("admin.signing_secret"),
		AdminTokenTTL:      time.Duration(configViper.GetInt("admin.token_ttl_minutes")) * time.Minute,
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if strings.TrimSpace(c.AdminSigningSecret) == "" {
		return fmt.Errorf("admin.signing_secret is required")
	}
	if strings.TrimSpace(c.AdminAccessSecret) == "" {
		return fmt.Errorf("admin.access_secret is required")
	}
	if c.AdminTokenTTL <= 0 {
		return fmt.Errorf("admin.token_ttl_minutes must be positive")
	}
	if c.NotifierTimeout < 0 {
		return fmt.Errorf("notifier.timeout must not be negative")
	}
	return nil
}
