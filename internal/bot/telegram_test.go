package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vibe-ticker/internal/domain"

	tele "gopkg.in/telebot.v3"
)

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	orig := newBot
	t.Cleanup(func() { newBot = orig })
	newBot = func(tele.Settings) (*tele.Bot, error) {
		t.Fatal("bot should not be created without a token")
		return nil, nil
	}
	StartTelegramBot("  ", nil, nil)
}

func TestStartTelegramBotCreateError(t *testing.T) {
	orig := newBot
	t.Cleanup(func() { newBot = orig })
	called := false
	newBot = func(pref tele.Settings) (*tele.Bot, error) {
		called = true
		if pref.Token != "token" {
			t.Fatalf("unexpected token %q", pref.Token)
		}
		return nil, errors.New("unauthorized")
	}
	StartTelegramBot("token", nil, nil)
	if !called {
		t.Fatal("expected bot construction")
	}
}

type stubAnalyzer struct {
	data   *domain.TickerData
	err    error
	symbol string
}

func (s *stubAnalyzer) AnalyzeTicker(ctx context.Context, symbol string) (*domain.TickerData, error) {
	s.symbol = symbol
	return s.data, s.err
}

type stubSearcher struct {
	results []domain.TickerSuggestion
	query   string
}

func (s *stubSearcher) SearchTickers(ctx context.Context, query string) []domain.TickerSuggestion {
	s.query = query
	return s.results
}

func TestVibeReply(t *testing.T) {
	analyzer := &stubAnalyzer{data: &domain.TickerData{
		Symbol:           "AAPL",
		CurrentPrice:     106,
		PriceChange24h:   3,
		PercentChange24h: 2.91,
		OverallVibeScore: 80,
		VibeLabel:        domain.VibeOptimistic,
		CorrelationScore: 0.8,
		TopKeywords:      []string{"Apple", "Earnings"},
		News: []domain.NewsItem{{
			Headline: "Apple beats", Source: "Reuters", SentimentScore: 0.8, SentimentLabel: domain.LabelBullish,
		}},
	}}

	got := vibeReply(context.Background(), analyzer, []string{"aapl"})
	if analyzer.symbol != "AAPL" {
		t.Fatalf("expected normalized symbol, got %q", analyzer.symbol)
	}
	for _, want := range []string{"AAPL", "Price: $106.00", "Vibe: 80/100 (Optimistic)", "Keywords: Apple, Earnings", "[Bullish +0.80] Apple beats (Reuters)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("reply missing %q:\n%s", want, got)
		}
	}
}

func TestVibeReplyUsageAndError(t *testing.T) {
	if got := vibeReply(context.Background(), &stubAnalyzer{}, nil); !strings.HasPrefix(got, "Usage") {
		t.Fatalf("expected usage, got %q", got)
	}

	analyzer := &stubAnalyzer{err: &domain.NoDataError{Symbol: "ZZZZ"}}
	got := vibeReply(context.Background(), analyzer, []string{"zzzz"})
	if !strings.Contains(got, "No price data found for ZZZZ") {
		t.Fatalf("expected user message, got %q", got)
	}
}

func TestSearchReply(t *testing.T) {
	searcher := &stubSearcher{results: []domain.TickerSuggestion{
		{Symbol: "AAPL", Name: "Apple Inc", Region: "United States"},
		{Symbol: "APLE", Name: "Apple Hospitality REIT Inc"},
	}}
	got := searchReply(context.Background(), searcher, []string{"apple", "inc"})
	if searcher.query != "apple inc" {
		t.Fatalf("expected joined query, got %q", searcher.query)
	}
	want := "AAPL - Apple Inc (United States)\nAPLE - Apple Hospitality REIT Inc"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if got := searchReply(context.Background(), &stubSearcher{}, []string{"zz"}); got != `No matches for "zz"` {
		t.Fatalf("unexpected empty reply %q", got)
	}
	if got := searchReply(context.Background(), &stubSearcher{}, nil); !strings.HasPrefix(got, "Usage") {
		t.Fatalf("expected usage, got %q", got)
	}
}
