// Package config loads the application configuration once at startup.
//
// Everything that used to be a global constant in tools like this — the
// admin password, the database file, the photo directory — lives in an
// explicit Config struct created here and injected into the server. Nothing
// else in the codebase reads the environment.
//
// Sources, in precedence order (viper semantics):
//  1. environment variables (DIRECTORY_PORT, DIRECTORY_ADMIN_PASSWORD, ...)
//  2. an optional YAML file named by CONFIG_PATH
//  3. built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the server configuration.
type Config struct {
	Port        int    // HTTP listen port
	DBPath      string // SQLite database file
	PhotoDir    string // photo store directory
	TemplateDir string // HTML templates

	// AdminPassword is the admin portal credential: either the literal
	// password or a bcrypt hash of it (detected by its "$2" prefix).
	AdminPassword string

	// SessionSecret signs the admin session cookie. Must be at least 16
	// characters; generate with `openssl rand -hex 32`.
	SessionSecret string

	LogLevel string // debug, info, warn, error
}

// Load reads the configuration from the environment and, if CONFIG_PATH is
// set, from that YAML file. It returns an error rather than panicking —
// main decides what a config failure means for the process.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "data/directory.db")
	v.SetDefault("photo_dir", "data/photos")
	v.SetDefault("template_dir", "web/templates")
	v.SetDefault("log_level", "info")

	// DIRECTORY_DB_PATH in the environment overrides db_path in the file.
	v.SetEnvPrefix("DIRECTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:          v.GetInt("port"),
		DBPath:        v.GetString("db_path"),
		PhotoDir:      v.GetString("photo_dir"),
		TemplateDir:   v.GetString("template_dir"),
		AdminPassword: v.GetString("admin_password"),
		SessionSecret: v.GetString("session_secret"),
		LogLevel:      v.GetString("log_level"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AdminPassword == "" {
		return errors.New("admin_password is required (set DIRECTORY_ADMIN_PASSWORD)")
	}
	if len(c.SessionSecret) < 16 {
		return errors.New("session_secret must be at least 16 characters (set DIRECTORY_SESSION_SECRET)")
	}
	return nil
}
