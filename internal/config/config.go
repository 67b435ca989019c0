package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/phuslu/log"
)

type Config struct {
	Port    int
	GinMode string

	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	AlphaVantageAPIKey     string
	AlphaVantageRatePerMin int
	NewsAPIKey             string
	NewsRSSFeedURL         string

	RedisURL           string
	PriceCacheTTLSecs  int
	SearchCacheTTLSecs int
	CacheJanitorSecs   int

	HTTPClientTimeoutSecs int
	AnalyzeTimeoutSecs    int
	LLMTimeoutSecs        int

	TelegramBotToken string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		OpenAIAPIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		AlphaVantageAPIKey: strings.TrimSpace(os.Getenv("ALPHAVANTAGE_API_KEY")),
		NewsAPIKey:         strings.TrimSpace(os.Getenv("NEWSAPI_KEY")),
		NewsRSSFeedURL:     strings.TrimSpace(os.Getenv("NEWS_RSS_FEED_URL")),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		TelegramBotToken:   strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		LogLevel:           strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		LogFormat:          strings.TrimSpace(os.Getenv("LOG_FORMAT")),
	}

	cfg.Port = positiveInt("PORT", 8080)

	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "gemini"
	}
	if cfg.LLMProvider != "gemini" && cfg.LLMProvider != "openai" {
		log.Warn().Str("LLM_PROVIDER", cfg.LLMProvider).Msg("unsupported LLM provider, defaulting to gemini")
		cfg.LLMProvider = "gemini"
	}

	cfg.GeminiModel = strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	// 0 disables the limiter.
	cfg.AlphaVantageRatePerMin = 5
	if v := strings.TrimSpace(os.Getenv("ALPHAVANTAGE_RATE_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.AlphaVantageRatePerMin = n
		}
	}

	cfg.PriceCacheTTLSecs = positiveInt("PRICE_CACHE_TTL_SECS", 300)
	cfg.SearchCacheTTLSecs = positiveInt("SEARCH_CACHE_TTL_SECS", 120)
	cfg.CacheJanitorSecs = positiveInt("CACHE_JANITOR_SECS", 60)
	cfg.HTTPClientTimeoutSecs = positiveInt("HTTP_CLIENT_TIMEOUT_SECS", 15)
	cfg.AnalyzeTimeoutSecs = positiveInt("ANALYZE_TIMEOUT_SECS", 45)
	cfg.LLMTimeoutSecs = positiveInt("LLM_TIMEOUT_SECS", 30)

	return cfg
}

// LLMKey returns the credential of the selected LLM provider.
func (c *Config) LLMKey() string {
	if c.LLMProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// LogWarnings reports missing credentials. Call it after the logger is set up.
func (c *Config) LogWarnings() {
	if c.AlphaVantageAPIKey == "" {
		log.Warn().Msg("ALPHAVANTAGE_API_KEY not set, /api/analyze will fail")
	}
	if c.LLMKey() == "" {
		log.Warn().Str("provider", c.LLMProvider).Msg("LLM API key not set, headlines will be scored neutral")
	}
	if c.NewsAPIKey == "" || c.NewsAPIKey == "your_newsapi_key_here" {
		log.Warn().Msg("NEWSAPI_KEY not set, news will be empty")
	}
	if c.RedisURL == "" {
		log.Info().Msg("REDIS_URL not set, using in-memory cache")
	}
	if c.TelegramBotToken == "" {
		log.Info().Msg("TELEGRAM_BOT_TOKEN not set")
	}
}

func positiveInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str(key, v).Int("default", def).Msg("invalid value, using default")
		return def
	}
	return n
}
