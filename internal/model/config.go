package model

import "time"

// Config is the complete runtime configuration.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus" mapstructure:"corpus"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	State    StateConfig    `yaml:"state" mapstructure:"state"`
	Quota    QuotaConfig    `yaml:"quota" mapstructure:"quota"`
	Fallback FallbackConfig `yaml:"fallback" mapstructure:"fallback"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Proxy    ProxyConfig    `yaml:"proxy" mapstructure:"proxy"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// CorpusConfig locates the answer source.
type CorpusConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	MaxEntries int    `yaml:"max_entries" mapstructure:"max_entries"`
	Persistent bool   `yaml:"persistent" mapstructure:"persistent"`
	Dir        string `yaml:"dir" mapstructure:"dir"`
}

// StateConfig locates the durable key-value state file.
type StateConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// QuotaConfig caps daily remote fallback calls per installation.
type QuotaConfig struct {
	MaxPerDay int `yaml:"max_per_day" mapstructure:"max_per_day"`
}

// FallbackConfig controls escalation to the remote model proxy.
type FallbackConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Confidence float64       `yaml:"confidence" mapstructure:"confidence"`
}

// ServerConfig controls the query message server.
type ServerConfig struct {
	Addr          string `yaml:"addr" mapstructure:"addr"`
	MaxUploadSize int64  `yaml:"max_upload_size" mapstructure:"max_upload_size"`
}

// ProxyConfig controls the model-API proxy server.
type ProxyConfig struct {
	Addr          string  `yaml:"addr" mapstructure:"addr"`
	UpstreamURL   string  `yaml:"upstream_url" mapstructure:"upstream_url"`
	Model         string  `yaml:"model" mapstructure:"model"`
	APIKeyEnv     string  `yaml:"api_key_env" mapstructure:"api_key_env"`
	RatePerMinute float64 `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
	Burst         int     `yaml:"burst" mapstructure:"burst"`
}

// LogConfig controls structured logging for the server commands.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Path: "answers.txt",
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 500,
		},
		State: StateConfig{
			Path: "", // resolved to ~/.answerfinder/state.json when empty
		},
		Quota: QuotaConfig{
			MaxPerDay: 100,
		},
		Fallback: FallbackConfig{
			Enabled:    false,
			Endpoint:   "",
			Timeout:    30 * time.Second,
			Confidence: 0.85,
		},
		Server: ServerConfig{
			Addr:          ":8085",
			MaxUploadSize: 10 << 20,
		},
		Proxy: ProxyConfig{
			Addr:          ":8090",
			UpstreamURL:   "https://api.groq.com/openai/v1",
			Model:         "llama-3.3-70b-versatile",
			APIKeyEnv:     "GROQ_API_KEY",
			RatePerMinute: 60,
			Burst:         10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
