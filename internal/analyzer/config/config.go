package config

import (
	"time"

	"golang-stock-analyzer/pkg/config"
)

// Analyzer holds the analysis pipeline configuration.
type Analyzer struct {
	MaxTickers           int           `mapstructure:"max_tickers"`
	Seed                 uint64        `mapstructure:"seed"`
	OscillatorMode       string        `mapstructure:"oscillator_mode"`
	MaxConcurrentReports int           `mapstructure:"max_concurrent_reports"`
	ResultStore          string        `mapstructure:"result_store"`
	ResultTTL            time.Duration `mapstructure:"result_ttl"`
	Timezone             string        `mapstructure:"timezone"`
	Locale               string        `mapstructure:"locale"`
	Indicators           Indicators    `mapstructure:"indicators"`
}

// Indicators holds the moving average and Bollinger parameters.
type Indicators struct {
	SMAPeriods      []int   `mapstructure:"sma_periods"`
	BollingerPeriod int     `mapstructure:"bollinger_period"`
	BollingerK      float64 `mapstructure:"bollinger_k"`
}

// Consumer holds the Redis stream consumer configuration.
type Consumer struct {
	Enabled         bool          `mapstructure:"enabled"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RetryInterval   time.Duration `mapstructure:"retry_interval"`
	MaxIdleDuration time.Duration `mapstructure:"max_idle_duration"`
	MaxRetry        int           `mapstructure:"max_retry"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// AI holds configuration for AI providers.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Watchlist holds the periodic analysis configuration.
type Watchlist struct {
	Enabled      bool     `mapstructure:"enabled"`
	Cron         string   `mapstructure:"cron"`
	Tickers      []string `mapstructure:"tickers"`
	LookbackDays int      `mapstructure:"lookback_days"`
	Notify       bool     `mapstructure:"notify"`
}

// Chart holds the PNG chart dimensions.
type Chart struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Config holds the full configuration for the analyzer service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Analyzer  Analyzer        `mapstructure:"analyzer"`
	Consumer  Consumer        `mapstructure:"consumer"`
	AI        AI              `mapstructure:"ai"`
	Gemini    Gemini          `mapstructure:"gemini"`
	Telegram  Telegram        `mapstructure:"telegram"`
	Watchlist Watchlist       `mapstructure:"watchlist"`
	Chart     Chart           `mapstructure:"chart"`
}

// Load loads the analyzer configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values with the built-in defaults.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "stock-analyzer"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Encoding == "" {
		c.Logger.Encoding = "json"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}

	a := &c.Analyzer
	if a.MaxTickers <= 0 {
		a.MaxTickers = 10
	}
	if a.OscillatorMode == "" {
		a.OscillatorMode = "synthetic"
	}
	if a.MaxConcurrentReports <= 0 {
		a.MaxConcurrentReports = 4
	}
	if a.ResultStore == "" {
		a.ResultStore = "memory"
	}
	if a.ResultTTL <= 0 {
		a.ResultTTL = time.Hour
	}
	if a.Locale == "" {
		a.Locale = "pt-BR"
	}
	if len(a.Indicators.SMAPeriods) == 0 {
		a.Indicators.SMAPeriods = []int{20, 50}
	}
	if a.Indicators.BollingerPeriod <= 0 {
		a.Indicators.BollingerPeriod = 20
	}
	if a.Indicators.BollingerK <= 0 {
		a.Indicators.BollingerK = 2
	}

	if c.AI.Provider == "" {
		c.AI.Provider = "gemini"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	if c.Consumer.Timeout <= 0 {
		c.Consumer.Timeout = 2 * time.Minute
	}
	if c.Consumer.RetryInterval <= 0 {
		c.Consumer.RetryInterval = 30 * time.Second
	}
	if c.Consumer.MaxIdleDuration <= 0 {
		c.Consumer.MaxIdleDuration = 5 * time.Minute
	}
	if c.Consumer.MaxRetry <= 0 {
		c.Consumer.MaxRetry = 3
	}

	if c.Watchlist.Cron == "" {
		c.Watchlist.Cron = "0 18 * * 1-5"
	}
	if c.Watchlist.LookbackDays <= 0 {
		c.Watchlist.LookbackDays = 90
	}

	if c.Chart.Width <= 0 {
		c.Chart.Width = 1024
	}
	if c.Chart.Height <= 0 {
		c.Chart.Height = 512
	}
}
