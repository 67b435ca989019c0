package service

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"vibe-ticker/internal/domain"
)

type stubPrices struct {
	data *domain.PriceData
	err  error
}

func (s stubPrices) FetchPriceData(ctx context.Context, symbol string) (*domain.PriceData, error) {
	return s.data, s.err
}

type stubHeadlines struct {
	items []domain.NewsItem
	calls int
}

func (s *stubHeadlines) FetchHeadlines(ctx context.Context, symbol string) []domain.NewsItem {
	s.calls++
	return s.items
}

type fixedScorer struct {
	scores []float64
	calls  int
}

func (s *fixedScorer) Score(ctx context.Context, items []domain.NewsItem) []domain.NewsItem {
	s.calls++
	out := make([]domain.NewsItem, len(items))
	for i, item := range items {
		item.SentimentScore = s.scores[i]
		item.SentimentLabel = domain.LabelNeutral
		if s.scores[i] > 0 {
			item.SentimentLabel = domain.LabelBullish
		}
		out[i] = item
	}
	return out
}

func aaplPrice() *domain.PriceData {
	return &domain.PriceData{
		Symbol:           "AAPL",
		CompanyName:      "AAPL",
		CurrentPrice:     106,
		PriceChange24h:   3,
		PercentChange24h: 3.0 / 103 * 100,
		History:          series(100, 101, 99, 105, 104, 103, 106),
	}
}

func TestAnalyzeTicker_AAPL(t *testing.T) {
	news := &stubHeadlines{items: []domain.NewsItem{
		{Headline: "Apple earnings beat", Summary: "Apple shares rise", Source: "Wire", URL: "https://a"},
		{Headline: "Apple launches device", Summary: "Analysts cheer launch", Source: "Wire", URL: "https://b"},
		{Headline: "Apple supplier update", Summary: "Steady outlook", Source: "Wire", URL: "https://c"},
	}}
	scorer := &fixedScorer{scores: []float64{0.8, 0.6, 0.4}}
	svc := NewAnalyzerService(testTracer, stubPrices{data: aaplPrice()}, news, scorer)

	got, err := svc.AnalyzeTicker(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Symbol != "AAPL" || got.CurrentPrice != 106 || len(got.History) != 7 {
		t.Fatalf("unexpected price fields: %+v", got)
	}
	if got.OverallVibeScore != 80 || got.VibeLabel != domain.VibeOptimistic {
		t.Fatalf("expected 80/Optimistic, got %d/%s", got.OverallVibeScore, got.VibeLabel)
	}
	if math.Abs(got.CorrelationScore-0.8) > 1e-9 {
		t.Fatalf("expected correlation 0.8, got %f", got.CorrelationScore)
	}
	if len(got.News) != 3 || got.News[0].SentimentLabel != domain.LabelBullish {
		t.Fatalf("unexpected news: %+v", got.News)
	}
	if got.TopKeywords[0] != "Apple" || len(got.TopKeywords) != 3 {
		t.Fatalf("unexpected keywords: %v", got.TopKeywords)
	}
}

func TestAnalyzeTicker_EmptyNews(t *testing.T) {
	scorer := &fixedScorer{}
	svc := NewAnalyzerService(testTracer, stubPrices{data: aaplPrice()}, &stubHeadlines{}, scorer)

	got, err := svc.AnalyzeTicker(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OverallVibeScore != 50 || got.VibeLabel != domain.VibeNeutral || got.CorrelationScore != 0.5 {
		t.Fatalf("expected neutral defaults, got %+v", got)
	}
	want := []domain.NewsItem{{
		Headline:       "No recent news found for AAPL",
		Source:         "VibeTicker",
		Summary:        "Please check back later for news updates.",
		URL:            "#",
		SentimentScore: 0,
		SentimentLabel: domain.LabelNeutral,
	}}
	if !reflect.DeepEqual(got.News, want) {
		t.Fatalf("unexpected placeholder news: %+v", got.News)
	}
	if !reflect.DeepEqual(got.TopKeywords, []string{"AAPL"}) {
		t.Fatalf("expected symbol keyword, got %v", got.TopKeywords)
	}
}

func TestAnalyzeTicker_PriceErrorIsFatal(t *testing.T) {
	cfgErr := &domain.ConfigError{Key: "ALPHAVANTAGE_API_KEY", Message: "Alpha Vantage API key is not configured."}
	scorer := &fixedScorer{}
	svc := NewAnalyzerService(testTracer, stubPrices{err: cfgErr}, &stubHeadlines{}, scorer)

	got, err := svc.AnalyzeTicker(context.Background(), "AAPL")
	if got != nil {
		t.Fatalf("expected no data, got %+v", got)
	}
	if !errors.Is(err, cfgErr) {
		t.Fatalf("expected config error, got %v", err)
	}
	if scorer.calls != 0 {
		t.Fatal("scoring should not run after a price failure")
	}
}

func TestAnalyzeTicker_NeutralScoring(t *testing.T) {
	news := &stubHeadlines{items: []domain.NewsItem{{Headline: "Tesla recalls cars", Summary: "Regulators", Source: "Wire", URL: "https://t"}}}
	svc := NewAnalyzerService(testTracer, stubPrices{data: aaplPrice()}, news, &fixedScorer{scores: []float64{0}})

	got, err := svc.AnalyzeTicker(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OverallVibeScore != 50 || got.CorrelationScore != 0.5 {
		t.Fatalf("expected neutral result, got %+v", got)
	}
	if len(got.News) != 1 || got.News[0].Headline != "Tesla recalls cars" {
		t.Fatalf("expected scored headline, got %+v", got.News)
	}
}
