package service

import (
	"context"
	"strings"

	"vibe-ticker/internal/cache"
	"vibe-ticker/internal/domain"

	"github.com/phuslu/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	minSearchQueryLen = 2
	maxSuggestions    = 6
)

type SymbolSearcher interface {
	Configured() bool
	SearchSymbols(ctx context.Context, keywords string) ([]domain.TickerSuggestion, error)
}

type SymbolService struct {
	tracer   trace.Tracer
	searcher SymbolSearcher
	cache    *cache.TTLCache[[]domain.TickerSuggestion]
}

func NewSymbolService(tracer trace.Tracer, searcher SymbolSearcher, searchCache *cache.TTLCache[[]domain.TickerSuggestion]) *SymbolService {
	return &SymbolService{tracer: tracer, searcher: searcher, cache: searchCache}
}

// SearchTickers returns up to six matches for query. Short queries, a missing
// credential and vendor failures all yield an empty list; failures are not
// cached.
func (s *SymbolService) SearchTickers(ctx context.Context, query string) []domain.TickerSuggestion {
	ctx, span := s.tracer.Start(ctx, "symbol-service.search-tickers")
	defer span.End()

	query = strings.TrimSpace(query)
	span.SetAttributes(attribute.String("query", query))
	if len([]rune(query)) < minSearchQueryLen {
		return []domain.TickerSuggestion{}
	}
	if s.searcher == nil || !s.searcher.Configured() {
		return []domain.TickerSuggestion{}
	}

	key := strings.ToLower(query)
	if cached, ok := s.cache.Get(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached
	}

	results, err := s.searcher.SearchSymbols(ctx, query)
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Str("query", query).Msg("symbol search failed")
		return []domain.TickerSuggestion{}
	}
	if len(results) > maxSuggestions {
		results = results[:maxSuggestions]
	}
	if results == nil {
		results = []domain.TickerSuggestion{}
	}

	s.cache.Set(ctx, key, results)
	return results
}
