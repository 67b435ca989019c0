package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibe-ticker/internal/bot"
	"vibe-ticker/internal/cache"
	"vibe-ticker/internal/config"
	"vibe-ticker/internal/domain"
	"vibe-ticker/internal/handler"
	"vibe-ticker/internal/job"
	"vibe-ticker/internal/logger"
	"vibe-ticker/internal/provider"
	"vibe-ticker/internal/sentiment"
	"vibe-ticker/internal/service"
	"vibe-ticker/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "vibe-ticker/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initLoggerFunc         = logger.Init
	initTracerFunc         = tracing.InitTracer
	newRedisClientFunc     = cache.NewRedisClient
	newLLMFunc             = sentiment.NewLLM
	startJanitorFunc       = func(j *job.CacheJanitor, ctx context.Context) { go j.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Vibe Ticker API
// @version         1.0
// @description     Market sentiment dashboard backend: price history, news sentiment and a combined vibe score per ticker.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()
	initLoggerFunc(cfg.LogLevel, cfg.LogFormat)
	cfg.LogWarnings()

	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	// Cache: Redis when configured and reachable, in-memory otherwise.
	var store cache.Store
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = newRedisClientFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory cache")
		} else {
			store = cache.NewRedisStore(redisClient, "vibe:")
		}
	}
	if store == nil {
		memStore := cache.NewMemoryStore()
		store = memStore
		startJanitorFunc(job.NewCacheJanitor(tracer, memStore, cfg.CacheJanitorSecs), ctx)
	}
	priceCache := cache.NewTTLCache[domain.PriceData](store, "price:", time.Duration(cfg.PriceCacheTTLSecs)*time.Second)
	searchCache := cache.NewTTLCache[[]domain.TickerSuggestion](store, "search:", time.Duration(cfg.SearchCacheTTLSecs)*time.Second)

	// Vendors
	httpTimeout := time.Duration(cfg.HTTPClientTimeoutSecs) * time.Second
	alpha := provider.NewAlphaVantageProvider(tracer, cfg.AlphaVantageAPIKey, cfg.AlphaVantageRatePerMin, httpTimeout)
	newsAPI := provider.NewNewsAPIProvider(tracer, cfg.NewsAPIKey, httpTimeout)
	rss := provider.NewRSSProvider(tracer, cfg.NewsRSSFeedURL, httpTimeout)

	llm, err := newLLMFunc(ctx, sentiment.BackendConfig{
		Provider:     cfg.LLMProvider,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
		Timeout:      time.Duration(cfg.LLMTimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Warn().Err(err).Msg("sentiment backend disabled")
		llm = nil
	}

	// Services
	priceService := service.NewPriceService(tracer, alpha, priceCache)
	newsService := service.NewNewsService(tracer, newsAPI, rss)
	scorer := sentiment.NewScorer(tracer, llm)
	analyzer := service.NewAnalyzerService(tracer, priceService, newsService, scorer)
	symbols := service.NewSymbolService(tracer, alpha, searchCache)

	startTelegramBotFunc(cfg.TelegramBotToken, analyzer, symbols)

	env := handler.EnvStatus{
		Gemini: llm != nil,
		Alpha:  alpha.Configured(),
		News:   newsAPI.Configured(),
	}
	h := newHandlerFunc(tracer, analyzer, symbols, env, store, time.Duration(cfg.AnalyzeTimeoutSecs)*time.Second)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info().Msg("Server exiting")
}
