package handler

import (
	"context"
	"time"

	"vibe-ticker/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Analyzer interface {
	AnalyzeTicker(ctx context.Context, symbol string) (*domain.TickerData, error)
}

type TickerSearcher interface {
	SearchTickers(ctx context.Context, query string) []domain.TickerSuggestion
}

// CacheStatus reports the cache backend and its state, e.g. "memory" or "redis:up".
type CacheStatus interface {
	Status(ctx context.Context) string
}

// EnvStatus records which vendor credentials are configured.
type EnvStatus struct {
	Gemini bool `json:"gemini"`
	Alpha  bool `json:"alpha"`
	News   bool `json:"news"`
}

type Handler struct {
	tracer         trace.Tracer
	analyzer       Analyzer
	searcher       TickerSearcher
	env            EnvStatus
	cache          CacheStatus
	analyzeTimeout time.Duration
}

func New(tracer trace.Tracer, analyzer Analyzer, searcher TickerSearcher, env EnvStatus, cacheStatus CacheStatus, analyzeTimeout time.Duration) *Handler {
	return &Handler{
		tracer:         tracer,
		analyzer:       analyzer,
		searcher:       searcher,
		env:            env,
		cache:          cacheStatus,
		analyzeTimeout: analyzeTimeout,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(MethodNotAllowed)
	r.Use(CORS())

	api := r.Group("/api")
	api.GET("/analyze", h.Analyze)
	api.GET("/symbol-search", h.SymbolSearch)
	api.GET("/health", h.Health)

	api.OPTIONS("/analyze", Preflight)
	api.OPTIONS("/symbol-search", Preflight)
	api.OPTIONS("/health", Preflight)
}
