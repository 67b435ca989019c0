package service

import (
	"context"

	"vibe-ticker/internal/domain"

	"github.com/phuslu/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

type PriceFetcher interface {
	FetchPriceData(ctx context.Context, symbol string) (*domain.PriceData, error)
}

type HeadlineFetcher interface {
	FetchHeadlines(ctx context.Context, symbol string) []domain.NewsItem
}

type HeadlineScorer interface {
	Score(ctx context.Context, items []domain.NewsItem) []domain.NewsItem
}

// AnalyzerService merges price history, news and sentiment into TickerData.
type AnalyzerService struct {
	tracer trace.Tracer
	prices PriceFetcher
	news   HeadlineFetcher
	scorer HeadlineScorer
}

func NewAnalyzerService(tracer trace.Tracer, prices PriceFetcher, news HeadlineFetcher, scorer HeadlineScorer) *AnalyzerService {
	return &AnalyzerService{tracer: tracer, prices: prices, news: news, scorer: scorer}
}

// AnalyzeTicker fails only when the price fetch fails. News and scoring
// problems degrade to an empty or neutral result.
func (s *AnalyzerService) AnalyzeTicker(ctx context.Context, symbol string) (*domain.TickerData, error) {
	ctx, span := s.tracer.Start(ctx, "analyzer-service.analyze-ticker")
	defer span.End()

	symbol = domain.NormalizeSymbol(symbol)
	span.SetAttributes(attribute.String("symbol", symbol))

	var (
		price     *domain.PriceData
		headlines []domain.NewsItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		price, err = s.prices.FetchPriceData(gctx, symbol)
		return err
	})
	g.Go(func() error {
		headlines = s.news.FetchHeadlines(gctx, symbol)
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Str("symbol", symbol).Msg("price fetch failed")
		return nil, err
	}

	scored := s.scorer.Score(ctx, headlines)
	avg := AverageSentiment(scored)
	vibe := VibeScore(avg)

	data := &domain.TickerData{
		Symbol:           price.Symbol,
		CompanyName:      price.CompanyName,
		CurrentPrice:     price.CurrentPrice,
		PriceChange24h:   price.PriceChange24h,
		PercentChange24h: price.PercentChange24h,
		OverallVibeScore: vibe,
		VibeLabel:        VibeLabel(vibe),
		CorrelationScore: CorrelationScore(price.History, avg),
		History:          price.History,
		News:             scored,
		TopKeywords:      ExtractKeywords(scored, symbol),
	}
	if data.Symbol == "" {
		data.Symbol = symbol
	}
	if data.CompanyName == "" {
		data.CompanyName = symbol
	}
	if len(scored) == 0 {
		data.News = placeholderNews(symbol)
	}
	if data.History == nil {
		data.History = []domain.PricePoint{}
	}

	span.SetAttributes(
		attribute.Int("vibe_score", vibe),
		attribute.Int("headlines", len(scored)),
	)
	return data, nil
}
