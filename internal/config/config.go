package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"cattree/internal/adapters/commons"
)

const (
	DefaultRootCategory = "Orkney Islands"
	DefaultMaxDepth     = 10
	DefaultAPIURL       = commons.DefaultAPIURL
	DefaultOutput       = "data/orkney-categories.json"
	DefaultDelay        = 100 * time.Millisecond
	DefaultTimeout      = 30 * time.Second
	DefaultUserAgent    = commons.DefaultUserAgent
)

// Config holds the cattree configuration
type Config struct {
	RootCategory string
	MaxDepth     int
	APIURL       string
	Output       string
	Delay        time.Duration // pause after each file count query and between pages
	Timeout      time.Duration // per-request deadline
	UserAgent    string
	HistoryDB    string
	History      bool // record finished runs in HistoryDB
}

// rawConfig mirrors the TOML file; durations are strings like "250ms"
type rawConfig struct {
	RootCategory string `toml:"root_category"`
	MaxDepth     *int   `toml:"max_depth"`
	APIURL       string `toml:"api_url"`
	Output       string `toml:"output"`
	Delay        string `toml:"delay"`
	Timeout      string `toml:"timeout"`
	UserAgent    string `toml:"user_agent"`
	HistoryDB    string `toml:"history_db"`
	History      *bool  `toml:"history"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		RootCategory: DefaultRootCategory,
		MaxDepth:     DefaultMaxDepth,
		APIURL:       DefaultAPIURL,
		Output:       DefaultOutput,
		Delay:        DefaultDelay,
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		HistoryDB:    defaultHistoryDB(),
		History:      true,
	}
}

// Validate checks the recognized options
func (c Config) Validate() error {
	if strings.TrimSpace(c.RootCategory) == "" {
		return fmt.Errorf("root_category must not be empty")
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if c.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// Path returns the path to the config file
func Path() (string, error) {
	if env := os.Getenv("CATTREE_CONFIG"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cattree", "config.toml"), nil
}

// Load reads .env, the config file and environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns error only if the file exists but is invalid.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	path, err := Path()
	if err == nil {
		cfg, err = LoadFile(path)
		if err != nil {
			return Default(), err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Default(), err
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// LoadFile reads a single TOML file on top of the defaults.
// A missing file yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if raw.RootCategory != "" {
		cfg.RootCategory = raw.RootCategory
	}
	if raw.MaxDepth != nil {
		cfg.MaxDepth = *raw.MaxDepth
	}
	if raw.APIURL != "" {
		cfg.APIURL = raw.APIURL
	}
	if raw.Output != "" {
		cfg.Output = raw.Output
	}
	if raw.UserAgent != "" {
		cfg.UserAgent = raw.UserAgent
	}
	if raw.History != nil {
		cfg.History = *raw.History
	}
	if raw.HistoryDB != "" {
		expanded, err := ExpandPath(raw.HistoryDB)
		if err != nil {
			return cfg, fmt.Errorf("expand history_db: %w", err)
		}
		cfg.HistoryDB = expanded
	}
	if raw.Delay != "" {
		d, err := time.ParseDuration(raw.Delay)
		if err != nil {
			return cfg, fmt.Errorf("invalid delay %q: %w", raw.Delay, err)
		}
		cfg.Delay = d
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// applyEnv overrides settings from CATTREE_* variables
func applyEnv(cfg *Config) error {
	if env := os.Getenv("CATTREE_ROOT"); env != "" {
		cfg.RootCategory = env
	}
	if env := os.Getenv("CATTREE_MAX_DEPTH"); env != "" {
		depth, err := strconv.Atoi(env)
		if err != nil {
			return fmt.Errorf("invalid CATTREE_MAX_DEPTH %q: %w", env, err)
		}
		cfg.MaxDepth = depth
	}
	if env := os.Getenv("CATTREE_OUTPUT"); env != "" {
		cfg.Output = env
	}
	if env := os.Getenv("CATTREE_API_URL"); env != "" {
		cfg.APIURL = env
	}
	if env := os.Getenv("CATTREE_HISTORY_DB"); env != "" {
		expanded, err := ExpandPath(env)
		if err != nil {
			return fmt.Errorf("expand CATTREE_HISTORY_DB: %w", err)
		}
		cfg.HistoryDB = expanded
	}
	return nil
}

// defaultHistoryDB returns $XDG_DATA_HOME/cattree/history.db
func defaultHistoryDB() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "cattree", "history.db")
}

// ExpandPath expands a leading ~ or ~/ to the user's home directory.
// Other forms such as ~bob/x are returned unchanged.
func ExpandPath(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
