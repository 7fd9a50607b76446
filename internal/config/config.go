package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// API
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// Credential storage
	CredentialFile string
	KeyringKey     string

	// Environment
	Env string

	// Logging
	LogLevel string
}

// Profile is the optional YAML file (~/.hoa/config.yaml by default) read on
// top of the environment. Empty fields leave the env values alone.
type Profile struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	CredentialFile string `yaml:"credential_file"`
	LogLevel       string `yaml:"log_level"`
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		BaseURL:   getEnv("HOA_API_URL", "http://localhost:8000/api"),
		Timeout:   time.Duration(parseInt(getEnv("HOA_TIMEOUT_SECONDS", "15"), 15)) * time.Second,
		UserAgent: getEnv("HOA_USER_AGENT", "HOA-Montana/1.0"),

		CredentialFile: getEnv("HOA_CREDENTIAL_FILE", defaultCredentialFile()),
		KeyringKey:     getEnv("HOA_KEYRING_KEY", ""),

		Env:      getEnv("HOA_ENV", "development"),
		LogLevel: getEnv("HOA_LOG_LEVEL", "debug"),
	}

	if path := getEnv("HOA_CONFIG_FILE", defaultProfileFile()); path != "" {
		if profile, err := loadProfile(path); err == nil {
			cfg.applyProfile(profile)
		}
	}

	return cfg
}

func loadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Config) applyProfile(p *Profile) {
	if p.BaseURL != "" {
		c.BaseURL = p.BaseURL
	}
	if p.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(p.TimeoutSeconds) * time.Second
	}
	if p.CredentialFile != "" {
		c.CredentialFile = p.CredentialFile
	}
	if p.LogLevel != "" {
		c.LogLevel = p.LogLevel
	}
}

func defaultCredentialFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hoa-credential"
	}
	return filepath.Join(home, ".hoa", "credential")
}

func defaultProfileFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hoa", "config.yaml")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
