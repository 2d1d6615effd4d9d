package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/hearth/config"
	ConfigFileName    = "hearth.yml"

	// DefaultTokenTTL is the lifetime of issued auth tokens in seconds.
	DefaultTokenTTL = 24 * 60 * 60
)

// ValidEnvironments is the list of valid deployment environments.
var ValidEnvironments = []string{"development", "production"}

// Config holds all hearth configuration settings.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// TokenSigningSecret is the HMAC secret used to sign auth tokens
	TokenSigningSecret string `yaml:"token_signing_secret" json:"-"`

	// BindAddress is the address the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP server port
	Port string `yaml:"port" json:"port"`

	// Environment controls log formatting (development or production)
	Environment string `yaml:"environment" json:"environment"`

	// AutoMigrate runs pending schema migrations on server start
	AutoMigrate bool `yaml:"auto_migrate" json:"auto_migrate"`

	// TokenTTLSeconds is the lifetime of issued auth tokens in seconds
	TokenTTLSeconds int `yaml:"token_ttl" json:"token_ttl"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment.
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

func newDefault() *Config {
	return &Config{
		BindAddress:     "0.0.0.0",
		Port:            "3000",
		Environment:     "production",
		AutoMigrate:     true,
		TokenTTLSeconds: DefaultTokenTTL,
		sources:         make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("HEARTH_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileValues
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"database_url", "token_signing_secret", "bind_address", "port",
		"environment", "auto_migrate", "token_ttl",
	}
}

// fileValues mirrors the YAML schema. AutoMigrate is a pointer so an
// explicit `auto_migrate: false` is distinguishable from the key being
// absent.
type fileValues struct {
	DatabaseURL        string `yaml:"database_url"`
	TokenSigningSecret string `yaml:"token_signing_secret"`
	BindAddress        string `yaml:"bind_address"`
	Port               string `yaml:"port"`
	Environment        string `yaml:"environment"`
	AutoMigrate        *bool  `yaml:"auto_migrate"`
	TokenTTLSeconds    int    `yaml:"token_ttl"`
}

func (c *Config) applyFileConfig(file *fileValues) {
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.TokenSigningSecret != "" {
		c.TokenSigningSecret = file.TokenSigningSecret
		c.sources["token_signing_secret"] = "file"
	}
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != "" {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.Environment != "" {
		c.Environment = file.Environment
		c.sources["environment"] = "file"
	}
	if file.AutoMigrate != nil {
		c.AutoMigrate = *file.AutoMigrate
		c.sources["auto_migrate"] = "file"
	}
	if file.TokenTTLSeconds != 0 {
		c.TokenTTLSeconds = file.TokenTTLSeconds
		c.sources["token_ttl"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.TokenSigningSecret = val
		c.sources["token_signing_secret"] = "environment"
	}
	if val := os.Getenv("BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("PORT"); val != "" {
		c.Port = val
		c.sources["port"] = "environment"
	}
	if val := os.Getenv("HEARTH_ENV"); val != "" {
		c.Environment = val
		c.sources["environment"] = "environment"
	}
	if val := os.Getenv("HEARTH_AUTO_MIGRATE"); val != "" {
		c.AutoMigrate = val == "true" || val == "1"
		c.sources["auto_migrate"] = "environment"
	}
	if val := os.Getenv("HEARTH_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTLSeconds = i
			c.sources["token_ttl"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the auth token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

// IsProduction reports whether the deployment environment is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	valid := false
	for _, e := range ValidEnvironments {
		if c.Environment == e {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.TokenTTLSeconds <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %d", c.TokenTTLSeconds)
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources.
// Secret values are redacted.
func (c *Config) Attributes() []Attribute {
	secret := ""
	if c.TokenSigningSecret != "" {
		secret = "(redacted)"
	}
	return []Attribute{
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "token_signing_secret", Value: secret, Source: c.Source("token_signing_secret")},
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: c.Port, Source: c.Source("port")},
		{Name: "environment", Value: c.Environment, Source: c.Source("environment")},
		{Name: "auto_migrate", Value: strconv.FormatBool(c.AutoMigrate), Source: c.Source("auto_migrate")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTLSeconds), Source: c.Source("token_ttl")},
	}
}

// FormatText returns a text representation of the configuration.
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration.
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// redactURL strips credentials from a connection URL for display.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	at := strings.LastIndex(raw, "@")
	scheme := strings.Index(raw, "://")
	if at == -1 || scheme == -1 || at < scheme {
		return raw
	}
	return raw[:scheme+3] + "(redacted)" + raw[at:]
}
