package config

import "testing"

var allKeys = []string{
	"PORT", "GIN_MODE", "LLM_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL",
	"ALPHAVANTAGE_API_KEY", "ALPHAVANTAGE_RATE_PER_MIN", "NEWSAPI_KEY", "NEWS_RSS_FEED_URL", "REDIS_URL",
	"PRICE_CACHE_TTL_SECS", "SEARCH_CACHE_TTL_SECS", "CACHE_JANITOR_SECS", "HTTP_CLIENT_TIMEOUT_SECS",
	"ANALYZE_TIMEOUT_SECS", "LLM_TIMEOUT_SECS", "TELEGRAM_BOT_TOKEN", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.LLMProvider != "gemini" || cfg.GeminiModel != "gemini-2.0-flash" || cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected LLM defaults: %+v", cfg)
	}
	if cfg.AlphaVantageRatePerMin != 5 {
		t.Fatalf("expected 5 calls/min, got %d", cfg.AlphaVantageRatePerMin)
	}
	if cfg.PriceCacheTTLSecs != 300 || cfg.SearchCacheTTLSecs != 120 || cfg.CacheJanitorSecs != 60 {
		t.Fatalf("unexpected cache defaults: %+v", cfg)
	}
	if cfg.HTTPClientTimeoutSecs != 15 || cfg.AnalyzeTimeoutSecs != 45 || cfg.LLMTimeoutSecs != 30 {
		t.Fatalf("unexpected timeout defaults: %+v", cfg)
	}
	if cfg.RedisURL != "" {
		t.Fatalf("expected no redis by default, got %q", cfg.RedisURL)
	}
	cfg.LogWarnings()
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", " OpenAI ")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("ALPHAVANTAGE_API_KEY", " av ")
	t.Setenv("ALPHAVANTAGE_RATE_PER_MIN", "0")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("PRICE_CACHE_TTL_SECS", "60")

	cfg := Load()
	if cfg.Port != 9090 || cfg.LLMProvider != "openai" || cfg.AlphaVantageAPIKey != "av" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LLMKey() != "sk-test" {
		t.Fatalf("expected openai key, got %q", cfg.LLMKey())
	}
	if cfg.AlphaVantageRatePerMin != 0 {
		t.Fatalf("expected limiter disabled, got %d", cfg.AlphaVantageRatePerMin)
	}
	if cfg.RedisURL != "redis://cache:6379/0" || cfg.PriceCacheTTLSecs != 60 {
		t.Fatalf("unexpected cache config: %+v", cfg)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "bad")
	t.Setenv("LLM_PROVIDER", "claude")
	t.Setenv("ALPHAVANTAGE_RATE_PER_MIN", "-3")
	t.Setenv("ANALYZE_TIMEOUT_SECS", "0")

	cfg := Load()
	if cfg.Port != 8080 {
		t.Fatalf("invalid port should fall back to default, got %d", cfg.Port)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("unsupported provider should fall back to gemini, got %q", cfg.LLMProvider)
	}
	if cfg.AlphaVantageRatePerMin != 5 {
		t.Fatalf("negative rate should fall back to default, got %d", cfg.AlphaVantageRatePerMin)
	}
	if cfg.AnalyzeTimeoutSecs != 45 {
		t.Fatalf("zero timeout should fall back to default, got %d", cfg.AnalyzeTimeoutSecs)
	}
}
