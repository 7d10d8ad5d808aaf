// Package config loads the application configuration from the data
// directory, falling back to built-in defaults when no file exists.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ecosort/wastesort"
)

// Config is the full application configuration.
type Config struct {
	// Model holds the classifier weights and thresholds.
	Model ModelConfig `mapstructure:"model" json:"model"`
	// Server holds the web UI settings.
	Server ServerConfig `mapstructure:"server" json:"server"`
	// DataDir is where the database and config file live.
	DataDir string `mapstructure:"dataDir" json:"dataDir"`
}

// ModelConfig mirrors wastesort.Config's tunables.
type ModelConfig struct {
	RuleWeight          float64 `mapstructure:"ruleWeight" json:"ruleWeight"`
	KeywordWeight       float64 `mapstructure:"keywordWeight" json:"keywordWeight"`
	MinConfidence       float64 `mapstructure:"minConfidence" json:"minConfidence"`
	SimilarityThreshold float64 `mapstructure:"similarityThreshold" json:"similarityThreshold"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Host          string `mapstructure:"host" json:"host"`
	Port          int    `mapstructure:"port" json:"port"`
	MaxImageBytes int64  `mapstructure:"maxImageBytes" json:"maxImageBytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			RuleWeight:          wastesort.DefaultRuleWeight,
			KeywordWeight:       wastesort.DefaultKeywordWeight,
			MinConfidence:       wastesort.DefaultMinConfidence,
			SimilarityThreshold: wastesort.DefaultSimilarityThreshold,
		},
		Server: ServerConfig{
			Host:          "localhost",
			Port:          8080,
			MaxImageBytes: 5 * 1024 * 1024,
		},
		DataDir: defaultDataDir(),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wastesort"
	}
	return filepath.Join(home, ".wastesort")
}

// Load reads config.json from dir (empty = default data dir). A missing file
// yields the defaults, not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()
	if dir != "" {
		cfg.DataDir = dir
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(cfg.DataDir)

	v.SetDefault("model.ruleWeight", cfg.Model.RuleWeight)
	v.SetDefault("model.keywordWeight", cfg.Model.KeywordWeight)
	v.SetDefault("model.minConfidence", cfg.Model.MinConfidence)
	v.SetDefault("model.similarityThreshold", cfg.Model.SimilarityThreshold)
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.maxImageBytes", cfg.Server.MaxImageBytes)
	v.SetDefault("dataDir", cfg.DataDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to dataDir/config.json.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.DataDir, "config.json"), data, 0644)
}

// Validate rejects configurations the classifier or server cannot run with.
func (c *Config) Validate() error {
	// The classifier treats a zero weight as unset and would silently
	// restore the default, so zero is rejected here rather than lied about.
	if c.Model.RuleWeight <= 0 || c.Model.KeywordWeight <= 0 {
		return errors.New("config: weights must be positive")
	}
	if c.Model.SimilarityThreshold < 0 || c.Model.SimilarityThreshold > 1 {
		return errors.New("config: similarityThreshold must be in [0,1]")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("config: invalid port")
	}
	if c.Server.MaxImageBytes <= 0 {
		return errors.New("config: maxImageBytes must be positive")
	}
	return nil
}

// Classifier builds the core classifier configuration from the model
// config, finalized so it can be shared across goroutines as-is.
func (c *Config) Classifier() *wastesort.Config {
	cfg := &wastesort.Config{
		RuleWeight:          c.Model.RuleWeight,
		KeywordWeight:       c.Model.KeywordWeight,
		MinConfidence:       c.Model.MinConfidence,
		SimilarityThreshold: c.Model.SimilarityThreshold,
	}
	cfg.Finalize()
	return cfg
}
