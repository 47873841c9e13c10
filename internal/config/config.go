package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Apify     ApifyConfig     `yaml:"apify" mapstructure:"apify"`
	Agent     AgentConfig     `yaml:"agent" mapstructure:"agent"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the local run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	HaikuModel  string `yaml:"haiku_model" mapstructure:"haiku_model"`
	SonnetModel string `yaml:"sonnet_model" mapstructure:"sonnet_model"`
}

// ApifyConfig holds Apify platform settings, including the actor IDs used by
// the external source adapters.
type ApifyConfig struct {
	Token            string `yaml:"token" mapstructure:"token"`
	BaseURL          string `yaml:"base_url" mapstructure:"base_url"`
	KeyValueStoreID  string `yaml:"key_value_store_id" mapstructure:"key_value_store_id"`
	OutputDatasetID  string `yaml:"output_dataset_id" mapstructure:"output_dataset_id"`
	RunID            string `yaml:"run_id" mapstructure:"run_id"`
	SearchActor      string `yaml:"search_actor" mapstructure:"search_actor"`
	LinkedInActor    string `yaml:"linkedin_actor" mapstructure:"linkedin_actor"`
	TrustpilotActor  string `yaml:"trustpilot_actor" mapstructure:"trustpilot_actor"`
	SimilarwebActor  string `yaml:"similarweb_actor" mapstructure:"similarweb_actor"`
	GoogleMapsActor  string `yaml:"google_maps_actor" mapstructure:"google_maps_actor"`
	ActorMemoryMB    int    `yaml:"actor_memory_mb" mapstructure:"actor_memory_mb"`
	PollIntervalSecs int    `yaml:"poll_interval_secs" mapstructure:"poll_interval_secs"`
	PollTimeoutSecs  int    `yaml:"poll_timeout_secs" mapstructure:"poll_timeout_secs"`
}

// AgentConfig configures the research agent loop.
type AgentConfig struct {
	MaxIterations    int `yaml:"max_iterations" mapstructure:"max_iterations"`
	MaxSearchResults int `yaml:"max_search_results" mapstructure:"max_search_results"`
	MaxTokens        int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ReportConfig configures the report synthesis pass.
type ReportConfig struct {
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	StoreKey  string `yaml:"store_key" mapstructure:"store_key"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RESEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "researcher.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("anthropic.haiku_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.sonnet_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("apify.base_url", "https://api.apify.com/v2")
	v.SetDefault("apify.search_actor", "apify/rag-web-browser")
	v.SetDefault("apify.linkedin_actor", "harvestapi/linkedin-company")
	v.SetDefault("apify.trustpilot_actor", "nikita-sviridenko/trustpilot-reviews-scraper")
	v.SetDefault("apify.similarweb_actor", "tri_angle/similarweb-scraper")
	v.SetDefault("apify.google_maps_actor", "compass/crawler-google-places")
	v.SetDefault("apify.actor_memory_mb", 1024)
	v.SetDefault("apify.poll_interval_secs", 2)
	v.SetDefault("apify.poll_timeout_secs", 300)
	v.SetDefault("agent.max_iterations", 8)
	v.SetDefault("agent.max_search_results", 1)
	v.SetDefault("agent.max_tokens", 4096)
	v.SetDefault("report.max_tokens", 8192)
	v.SetDefault("report.store_key", "business_report")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that credentials required for a research run are present.
func (c *Config) Validate() error {
	if c.Anthropic.Key == "" {
		return eris.New("config: RESEARCH_ANTHROPIC_KEY is required")
	}
	if c.Apify.Token == "" {
		return eris.New("config: RESEARCH_APIFY_TOKEN is required")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
