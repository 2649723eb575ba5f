// internal/config/config.go
//
// Runtime configuration for the Questify client. The backend base URL is
// the only required external knob; everything else has a sane default.
// Each user gets a .questify/ directory in their home for logs and local
// state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// QuestifyDir is the per-user directory created in $HOME.
	QuestifyDir = ".questify"

	envPrefix         = "QUESTIFY"
	defaultBackendURL = "http://localhost:8080/api"
)

// Config holds the runtime configuration for the client.
type Config struct {
	// BackendURL is the backend base URL including the /api prefix.
	BackendURL string

	// Environment switches log verbosity ("production" quiets debug logs).
	Environment string

	// HomeDir is the resolved .questify directory.
	HomeDir string
}

// Load reads configuration from an optional config.yaml (current directory
// or the .questify dir) and QUESTIFY_* environment variables. A missing
// config file is fine; a malformed one is not.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("config: resolve home dir: %w", err)
	}
	questifyDir := filepath.Join(home, QuestifyDir)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(questifyDir)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("backend_url", defaultBackendURL)
	v.SetDefault("environment", "development")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{
		BackendURL:  v.GetString("backend_url"),
		Environment: v.GetString("environment"),
		HomeDir:     questifyDir,
	}
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("config: backend_url must not be empty")
	}
	return cfg, nil
}

// InitQuestifyDir creates the .questify directory structure:
//
// .questify/
// ├── logs/   <- client log file
// └── state.yaml (created on first write)
func InitQuestifyDir(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: init questify dir: %w", err)
	}
	return nil
}

// LogPath returns the path of the client log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.HomeDir, "logs", "questify.log")
}

// StatePath returns the path of the local state file.
func (c *Config) StatePath() string {
	return filepath.Join(c.HomeDir, "state.yaml")
}
