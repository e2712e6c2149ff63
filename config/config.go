package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the register
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Cache    CacheConfig
	Search   SearchConfig
	UI       UIConfig
	Snapshot SnapshotConfig
}

// ServerConfig holds the local lane API configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BackendConfig holds the POS backend API configuration
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds catalog snapshot cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// SearchConfig holds the ranking constants. The tier offsets and floors are
// empirically tuned; changing them changes ranking behavior, so they live in
// configuration rather than code.
type SearchConfig struct {
	MaxResults          int     `mapstructure:"max_results"`
	FuzzyFloor          float64 `mapstructure:"fuzzy_floor"`
	HighlightFloor      float64 `mapstructure:"highlight_floor"`
	MinFuzzyQueryLen    int     `mapstructure:"min_fuzzy_query_len"`
	NameExactOffset     float64 `mapstructure:"name_exact_offset"`
	CategoryExactOffset float64 `mapstructure:"category_exact_offset"`
	BarcodeExactOffset  float64 `mapstructure:"barcode_exact_offset"`
	NameFuzzyOffset     float64 `mapstructure:"name_fuzzy_offset"`
	CategoryFuzzyOffset float64 `mapstructure:"category_fuzzy_offset"`
	EnableDebugLogging  bool    `mapstructure:"enable_debug_logging"`
}

// UIConfig holds interactive controller configuration
type UIConfig struct {
	Debounce      time.Duration `mapstructure:"debounce"`
	EnableCartAdd bool          `mapstructure:"enable_cart_add"`
}

// SnapshotConfig holds local catalog snapshot configuration
type SnapshotConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lanepos/")

	// Environment variable settings
	v.SetEnvPrefix("REGISTER")
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8090")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Backend defaults
	v.SetDefault("backend.base_url", "http://localhost:8080")
	v.SetDefault("backend.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Search ranking defaults
	v.SetDefault("search.max_results", 8)
	v.SetDefault("search.fuzzy_floor", 60.0)
	v.SetDefault("search.highlight_floor", 70.0)
	v.SetDefault("search.min_fuzzy_query_len", 3)
	v.SetDefault("search.name_exact_offset", 2000.0)
	v.SetDefault("search.category_exact_offset", 1000.0)
	v.SetDefault("search.barcode_exact_offset", 800.0)
	v.SetDefault("search.name_fuzzy_offset", 500.0)
	v.SetDefault("search.category_fuzzy_offset", 300.0)
	v.SetDefault("search.enable_debug_logging", false)

	// UI defaults
	v.SetDefault("ui.debounce", "150ms")
	v.SetDefault("ui.enable_cart_add", true)

	// Snapshot defaults
	v.SetDefault("snapshot.path", "register.db")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required (set REGISTER_BACKEND_BASE_URL)")
	}

	if config.Search.FuzzyFloor < 0 || config.Search.FuzzyFloor > 100 {
		return fmt.Errorf("search fuzzy floor must be within [0,100], got: %v", config.Search.FuzzyFloor)
	}

	if config.Search.HighlightFloor < 0 || config.Search.HighlightFloor > 100 {
		return fmt.Errorf("search highlight floor must be within [0,100], got: %v", config.Search.HighlightFloor)
	}

	if config.Search.MaxResults <= 0 {
		return fmt.Errorf("search max results must be positive, got: %d", config.Search.MaxResults)
	}

	if config.UI.Debounce <= 0 {
		return fmt.Errorf("ui debounce must be positive, got: %v", config.UI.Debounce)
	}

	return nil
}
