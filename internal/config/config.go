package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Key cache backends accepted by the key_cache setting
const (
	KeyCacheNone    = "none"
	KeyCacheKeyring = "keyring"
)

// Config holds the CLI configuration
type Config struct {
	Workspace     string `json:"workspace,omitempty"`
	Account       string `json:"account,omitempty"`
	KeyCache      string `json:"key_cache,omitempty"`
	DefaultOutput string `json:"default_output,omitempty"`

	path string
}

// Load reads config from XDG path, returns defaults if file doesn't exist
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path, returns defaults if file doesn't exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Empty fields are resolved in cli.AfterApply
			return &Config{path: path}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.path = path

	return &cfg, nil
}

// Path returns the file the config is read from and saved to
func (c *Config) Path() string {
	if c.path == "" {
		return ConfigPath()
	}
	return c.path
}

// Save writes the config to its file
func (c *Config) Save() error {
	path := c.Path()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// JSON is valid JSON5
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Keys returns the settable config key names in declaration order
func (c *Config) Keys() []string {
	t := reflect.TypeOf(c).Elem()
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name := jsonName(t.Field(i)); name != "" {
			keys = append(keys, name)
		}
	}
	return keys
}

// Get retrieves a config value by key name
func (c *Config) Get(key string) (string, error) {
	field, err := c.field(key)
	if err != nil {
		return "", err
	}
	return field.String(), nil
}

// Set sets a config value by key name and saves
func (c *Config) Set(key, value string) error {
	if key == "key_cache" && value != KeyCacheNone && value != KeyCacheKeyring {
		return fmt.Errorf("invalid key_cache %q: want %s or %s", value, KeyCacheNone, KeyCacheKeyring)
	}
	if key == "account" && value != "" && !IsKnownAccount(value) {
		return fmt.Errorf("unknown account: %s", value)
	}

	field, err := c.field(key)
	if err != nil {
		return err
	}
	field.SetString(value)
	return c.Save()
}

// Unset sets a config value to its zero value and saves
func (c *Config) Unset(key string) error {
	field, err := c.field(key)
	if err != nil {
		return err
	}
	field.SetString("")
	return c.Save()
}

// UseKeyring reports whether workspace keys are read from the key cache
func (c *Config) UseKeyring() bool {
	return c.KeyCache == KeyCacheKeyring
}

func (c *Config) field(key string) (reflect.Value, error) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		if name := jsonName(t.Field(i)); name != "" && name == key {
			return v.Field(i), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	return name
}
