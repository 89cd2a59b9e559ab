package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Home      HomeConfig      `mapstructure:"home"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	UI        UIConfig        `mapstructure:"ui"`
	Viewer    ViewerConfig    `mapstructure:"viewer"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// CatalogConfig holds remote catalog configuration
type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // Per-request timeout, e.g. "15s"
}

// HomeConfig holds home feed configuration
type HomeConfig struct {
	Letter   string `mapstructure:"letter"`   // First letter the feed searches by
	Prefetch int    `mapstructure:"prefetch"` // Rows from the end that trigger the next page
}

// FavoritesConfig holds favorites configuration
type FavoritesConfig struct {
	Dir string `mapstructure:"dir"` // Empty keeps favorites in memory for the session
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme      string `mapstructure:"theme"`
	DefaultTab string `mapstructure:"default_tab"` // "home", "categories" or "favorites"
}

// ViewerConfig holds the external image viewer configuration
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL: "https://www.thecocktaildb.com/api/json/v1/1/",
			Timeout: 15 * time.Second,
		},
		Home: HomeConfig{
			Letter:   "a",
			Prefetch: 3,
		},
		Favorites: FavoritesConfig{
			Dir: "",
		},
		UI: UIConfig{
			Theme:      "default",
			DefaultTab: "home",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "barcart", "barcart.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "barcart", "barcart.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "barcart")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "barcart")
	}
}

// DefaultFavoritesDir returns a suggested directory for persisted favorites
func DefaultFavoritesDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "barcart", "favorites")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "barcart", "favorites")
	}
}

// newViper returns a viper instance with defaults, search paths and env overrides
func newViper(configFile string) *viper.Viper {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("catalog.base_url", def.Catalog.BaseURL)
	v.SetDefault("catalog.timeout", def.Catalog.Timeout)
	v.SetDefault("home.letter", def.Home.Letter)
	v.SetDefault("home.prefetch", def.Home.Prefetch)
	v.SetDefault("favorites.dir", def.Favorites.Dir)
	v.SetDefault("ui.theme", def.UI.Theme)
	v.SetDefault("ui.default_tab", def.UI.DefaultTab)
	v.SetDefault("viewer.command", def.Viewer.Command)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. BARCART_CATALOG_BASE_URL
	v.SetEnvPrefix("BARCART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment.
// An empty configFile searches the default locations.
func LoadConfig(configFile string) (*Config, error) {
	v := newViper(configFile)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configFile == "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values viper cannot type-check
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("catalog.timeout must not be negative")
	}
	letter := strings.ToLower(c.Home.Letter)
	if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return fmt.Errorf("home.letter must be a single letter, got %q", c.Home.Letter)
	}
	c.Home.Letter = letter
	if c.Home.Prefetch < 0 {
		c.Home.Prefetch = 0
	}
	switch strings.ToLower(strings.TrimSpace(c.UI.DefaultTab)) {
	case "", "home":
		c.UI.DefaultTab = "home"
	case "categories", "category":
		c.UI.DefaultTab = "categories"
	case "favorites", "favourites":
		c.UI.DefaultTab = "favorites"
	default:
		return fmt.Errorf("ui.default_tab must be home, categories or favorites, got %q", c.UI.DefaultTab)
	}
	return nil
}

// SaveConfig writes cfg to configFile, or to the default location when empty
func SaveConfig(cfg *Config, configFile string) error {
	if configFile == "" {
		configFile = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())

	v.Set("home.letter", cfg.Home.Letter)
	v.Set("home.prefetch", cfg.Home.Prefetch)

	v.Set("favorites.dir", cfg.Favorites.Dir)

	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.default_tab", cfg.UI.DefaultTab)

	v.Set("viewer.command", cfg.Viewer.Command)
	if len(cfg.Viewer.Args) > 0 {
		v.Set("viewer.args", cfg.Viewer.Args)
	}

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
