package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Host    string        `yaml:"host" json:"host" jsonschema:"default=0.0.0.0,description=HTTP server bind address"`
		Port    int           `yaml:"port" json:"port" jsonschema:"default=8000,description=HTTP server port"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:marketsurvey.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Scrape ScrapeConfig `yaml:"scrape" json:"scrape" jsonschema:"description=Scraping configuration"`

	Matching MatchingConfig `yaml:"matching" json:"matching" jsonschema:"description=Address matching and price correlation configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for AI market insights"`

	Schedule struct {
		UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"description=Periodic re-scrape interval (0 disables)"`
		MaxWorkers     int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent scrape workers"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Log struct {
		Level string `yaml:"level" json:"level" jsonschema:"default=INFO,enum=DEBUG,enum=INFO,enum=WARNING,enum=ERROR,description=Log level"`
	} `yaml:"log" json:"log" jsonschema:"description=Logging configuration"`
}

// ScrapeConfig holds scraping settings
type ScrapeConfig struct {
	Delay         time.Duration `yaml:"delay" json:"delay" jsonschema:"default=2s,description=Delay between outbound scraper requests"`
	MaxRetries    int           `yaml:"max_retries" json:"max_retries" jsonschema:"default=3,description=Retry attempts for failed requests"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=MarketSurveyBot/1.0,description=User agent for scraper requests"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	PageLimit     int           `yaml:"page_limit" json:"page_limit" jsonschema:"default=10,description=Maximum project pages fetched per city"`
	MadlanBaseURL string        `yaml:"madlan_base_url" json:"madlan_base_url" jsonschema:"default=https://www.madlan.co.il,description=Madlan base URL"`
	TaxBaseURL    string        `yaml:"tax_base_url" json:"tax_base_url" jsonschema:"default=https://www.gov.il/he/departments/taxes,description=Tax Authority base URL"`
}

// MatchingConfig holds address matching and price correlation settings
type MatchingConfig struct {
	AddressMatchThreshold     float64 `yaml:"address_match_threshold" json:"address_match_threshold" jsonschema:"default=0.85,minimum=0,maximum=1,description=Minimum address similarity to attach a transaction to a project"`
	PriceCorrelationThreshold float64 `yaml:"price_correlation_threshold" json:"price_correlation_threshold" jsonschema:"default=0.75,minimum=0,maximum=1,description=Minimum correlation to flag a project price series as correlated"`
}

// LLMConfig holds LLM configuration for insights generation
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://openrouter.ai/api/v1,description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"default=openai/gpt-4o,description=Model name"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// Load reads configuration from a YAML file and applies environment overrides.
// An empty path or a missing file yields the built-in defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else {
			// expand environment variables
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	setDefaults(&cfg)

	// the nine-key environment contract overrides anything from the file
	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with built-in defaults
func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:marketsurvey.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Scrape.Delay == 0 {
		cfg.Scrape.Delay = 2 * time.Second
	}
	if cfg.Scrape.MaxRetries == 0 {
		cfg.Scrape.MaxRetries = 3
	}
	if cfg.Scrape.UserAgent == "" {
		cfg.Scrape.UserAgent = "MarketSurveyBot/1.0"
	}
	if cfg.Scrape.Timeout == 0 {
		cfg.Scrape.Timeout = 30 * time.Second
	}
	if cfg.Scrape.PageLimit == 0 {
		cfg.Scrape.PageLimit = 10
	}
	if cfg.Scrape.MadlanBaseURL == "" {
		cfg.Scrape.MadlanBaseURL = "https://www.madlan.co.il"
	}
	if cfg.Scrape.TaxBaseURL == "" {
		cfg.Scrape.TaxBaseURL = "https://www.gov.il/he/departments/taxes"
	}

	if cfg.Matching.AddressMatchThreshold == 0 {
		cfg.Matching.AddressMatchThreshold = 0.85
	}
	if cfg.Matching.PriceCorrelationThreshold == 0 {
		cfg.Matching.PriceCorrelationThreshold = 0.75
	}

	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "https://openrouter.ai/api/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "openai/gpt-4o"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 2000
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}

	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 5
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
}

// applyEnv applies the environment variable contract on top of the loaded config
func applyEnv(cfg *Config) error {
	if v := os.Getenv("API_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("API_PORT %q is not an integer: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("SCRAPE_DELAY"); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SCRAPE_DELAY %q is not a number: %w", v, err)
		}
		cfg.Scrape.Delay = time.Duration(secs * float64(time.Second))
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		retries, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_RETRIES %q is not an integer: %w", v, err)
		}
		cfg.Scrape.MaxRetries = retries
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.Scrape.UserAgent = v
	}
	if v := os.Getenv("ADDRESS_MATCH_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ADDRESS_MATCH_THRESHOLD %q is not a number: %w", v, err)
		}
		cfg.Matching.AddressMatchThreshold = threshold
	}
	if v := os.Getenv("PRICE_CORRELATION_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("PRICE_CORRELATION_THRESHOLD %q is not a number: %w", v, err)
		}
		cfg.Matching.PriceCorrelationThreshold = threshold
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	return nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Scrape.Delay < 0 {
		return fmt.Errorf("scrape.delay must be non-negative")
	}
	if cfg.Scrape.MaxRetries < 0 {
		return fmt.Errorf("scrape.max_retries must be non-negative")
	}
	if cfg.Scrape.UserAgent == "" {
		return fmt.Errorf("scrape.user_agent is required")
	}

	if cfg.Matching.AddressMatchThreshold < 0 || cfg.Matching.AddressMatchThreshold > 1 {
		return fmt.Errorf("matching.address_match_threshold must be between 0 and 1")
	}
	if cfg.Matching.PriceCorrelationThreshold < 0 || cfg.Matching.PriceCorrelationThreshold > 1 {
		return fmt.Errorf("matching.price_correlation_threshold must be between 0 and 1")
	}

	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if !validLogLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of DEBUG, INFO, WARNING, ERROR")
	}

	return nil
}

// validLogLevel reports whether the given level is in the allowed enum
func validLogLevel(level string) bool {
	switch level {
	case "DEBUG", "INFO", "WARNING", "ERROR":
		return true
	}
	return false
}

// GetServerConfig returns server listen address and timeout
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port), c.Server.Timeout
}

// GetScrapeConfig returns scraping configuration
func (c *Config) GetScrapeConfig() ScrapeConfig {
	return c.Scrape
}

// GetMatchingConfig returns matching configuration
func (c *Config) GetMatchingConfig() MatchingConfig {
	return c.Matching
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// Debug reports whether debug logging is requested via LOG_LEVEL
func (c *Config) Debug() bool {
	return c.Log.Level == "DEBUG"
}
