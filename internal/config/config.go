package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Search  SearchConfig  `mapstructure:"search"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
	Keys    KeyConfig     `mapstructure:"keys"`
}

type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	PageSize       int           `mapstructure:"page_size"`
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	UserAgent      string        `mapstructure:"user_agent"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type SearchConfig struct {
	Engine      string `mapstructure:"engine"`
	MinQueryLen int    `mapstructure:"min_query_len"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type UIConfig struct {
	Colors UIColors   `mapstructure:"colors"`
	List   ListConfig `mapstructure:"list"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

type ListConfig struct {
	MaxDescriptionLength int `mapstructure:"max_description_length"`
	WordWrapMaxWidth     int `mapstructure:"word_wrap_max_width"`
	WordWrapMinWidth     int `mapstructure:"word_wrap_min_width"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit         string `mapstructure:"quit"`
	Search       string `mapstructure:"search"`
	Category     string `mapstructure:"category"`
	Difficulty   string `mapstructure:"difficulty"`
	ContentType  string `mapstructure:"content_type"`
	Sort         string `mapstructure:"sort"`
	ClearFilters string `mapstructure:"clear_filters"`
	LoadMore     string `mapstructure:"load_more"`
	Refresh      string `mapstructure:"refresh"`
	Back         string `mapstructure:"back"`
	Help         string `mapstructure:"help"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	sessionPath := filepath.Join(homeDir, ".akiba.db")
	logPath := filepath.Join(homeDir, ".akiba", "akiba.log")

	return &Config{
		API: APIConfig{
			BaseURL:        "https://api.akiba.africa",
			Timeout:        30 * time.Second,
			PageSize:       12,
			SearchDebounce: 500 * time.Millisecond,
			UserAgent:      "akiba/1.0 (terminal client)",
		},
		Session: SessionConfig{
			Path: sessionPath,
		},
		Search: SearchConfig{
			Engine:      "simple",
			MinQueryLen: 2,
		},
		Log: LogConfig{
			Level:      "info",
			File:       logPath,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#10B981",
				Secondary:  "#F59E0B",
				Accent:     "#34D399",
				Background: "#0F172A",
				Surface:    "#1E293B",
				Text:       "#F1F5F9",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
			List: ListConfig{
				MaxDescriptionLength: 150,
				WordWrapMaxWidth:     120,
				WordWrapMinWidth:     40,
			},
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:         "q",
				Search:       "s",
				Category:     "c",
				Difficulty:   "d",
				ContentType:  "t",
				Sort:         "o",
				ClearFilters: "x",
				LoadMore:     "m",
				Refresh:      "r",
				Back:         "esc",
				Help:         "?",
			},
		},
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("session", cfg.Session)
	v.SetDefault("search", cfg.Search)
	v.SetDefault("log", cfg.Log)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "akiba")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("AKIBA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand paths after loading
	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand tilde
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	// Convert to absolute path if not already absolute
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// expandPaths expands all paths in the config
func expandPaths(cfg *Config) {
	cfg.Session.Path = expandPath(cfg.Session.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Convert durations to strings for TOML readability
	apiCfg := map[string]interface{}{
		"base_url":        config.API.BaseURL,
		"timeout":         config.API.Timeout.String(),
		"page_size":       config.API.PageSize,
		"search_debounce": config.API.SearchDebounce.String(),
		"user_agent":      config.API.UserAgent,
	}

	v.Set("api", apiCfg)
	v.Set("session", config.Session)
	v.Set("search", config.Search)
	v.Set("log", config.Log)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

// DefaultConfigPath returns where `akiba config init` writes its file.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "akiba", "config.toml")
}
