package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:0",
			Timeout:        5 * time.Second,
			PageSize:       12,
			SearchDebounce: 10 * time.Millisecond,
			UserAgent:      "akiba-test/1.0",
		},
		Session: SessionConfig{
			Path: "", // Tests supply a temp path
		},
		Search: SearchConfig{
			Engine:      "simple",
			MinQueryLen: 2,
		},
		Log: LogConfig{
			Level: "off",
		},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
	}
}
