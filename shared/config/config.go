package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultBaseURL = "https://cmsback.e-aribt.com"
	// BaseURLEnv overrides api.base_url.
	BaseURLEnv = "CMS_API_URL"

	configFile = "config.yaml"
	envFile    = ".env"
)

type Config struct {
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
	Uploads Uploads `yaml:"uploads"`
}

type API struct {
	BaseURL string `yaml:"base_url"`
	// TokenField names the login response field holding the token. Empty
	// means "access_token, then token".
	TokenField string `yaml:"token_field"`
	// StatusField names the registration field written by status updates.
	StatusField string `yaml:"status_field"`
}

type Session struct {
	TokenPath string `yaml:"token_path"`
}

type Server struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// HTTPS marks cookies Secure and enables HSTS.
	HTTPS bool `yaml:"https"`
	// LoginAttemptsPerMinute per client IP; 0 disables throttling.
	LoginAttemptsPerMinute int `yaml:"login_attempts_per_minute"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Uploads struct {
	MaxSize int64 `yaml:"max_size"` // bytes, per request
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		API: API{
			BaseURL:     DefaultBaseURL,
			StatusField: "verified",
		},
		Session: Session{TokenPath: defaultTokenPath()},
		Server: Server{
			Port:                   "8081",
			ReadTimeout:            5 * time.Second,
			WriteTimeout:           10 * time.Second,
			LoginAttemptsPerMinute: 10,
		},
		Log:     Log{Level: "info"},
		Uploads: Uploads{MaxSize: 10 << 20},
	}
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".hackathon-cms", "auth_token")
}

// Load reads config.yaml from configFolder on top of Default, loads a .env
// file from the same folder when present and applies environment overrides.
// A missing config.yaml is not an error.
func Load(configFolder string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path.Join(configFolder, configFile))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("can't unmarshal config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("can't read config file: %w", err)
	}

	// godotenv never overwrites variables already set in the environment.
	if err := godotenv.Load(path.Join(configFolder, envFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("can't load %s: %w", envFile, err)
	}

	if v := os.Getenv(BaseURLEnv); v != "" {
		cfg.API.BaseURL = v
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		return nil, errors.New("api.base_url must not be empty")
	}
	if cfg.API.StatusField == "" {
		cfg.API.StatusField = "verified"
	}
	return cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
