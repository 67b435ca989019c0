package service

import (
	"context"

	"vibe-ticker/internal/domain"
	"vibe-ticker/internal/provider"

	"github.com/phuslu/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	newsPageSize     = 10
	maxHeadlines     = 5
	rssFallbackItems = 20
)

// ArticleSource is the primary news vendor.
type ArticleSource interface {
	Configured() bool
	FetchArticles(ctx context.Context, query string, pageSize int) ([]provider.NewsArticle, error)
}

// FeedSource is an optional per-symbol headline feed.
type FeedSource interface {
	Configured() bool
	FetchSymbolFeed(ctx context.Context, symbol string, maxItems int) ([]provider.NewsArticle, error)
}

type NewsService struct {
	tracer   trace.Tracer
	articles ArticleSource
	feed     FeedSource
}

// NewNewsService builds the news adapter. feed may be nil.
func NewNewsService(tracer trace.Tracer, articles ArticleSource, feed FeedSource) *NewsService {
	return &NewsService{tracer: tracer, articles: articles, feed: feed}
}

func (s *NewsService) Configured() bool {
	return s.articles != nil && s.articles.Configured()
}

// FetchHeadlines returns up to five unscored headlines for symbol. It never
// fails; every problem yields an empty list.
func (s *NewsService) FetchHeadlines(ctx context.Context, symbol string) []domain.NewsItem {
	ctx, span := s.tracer.Start(ctx, "news-service.fetch-headlines")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	var articles []provider.NewsArticle
	if s.Configured() {
		var err error
		articles, err = s.articles.FetchArticles(ctx, symbol, newsPageSize)
		if err != nil {
			span.RecordError(err)
			log.Warn().Err(err).Str("symbol", symbol).Msg("news fetch failed")
			articles = nil
		}
	}

	if len(articles) == 0 && s.feed != nil && s.feed.Configured() {
		feedArticles, err := s.feed.FetchSymbolFeed(ctx, symbol, rssFallbackItems)
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("rss news fallback failed")
		} else {
			articles = feedArticles
		}
	}

	items := toNewsItems(articles)
	span.SetAttributes(attribute.Int("headlines", len(items)))
	return items
}

func toNewsItems(articles []provider.NewsArticle) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, min(len(articles), maxHeadlines))
	for _, a := range articles {
		if len(items) >= maxHeadlines {
			break
		}
		if a.Title == "" || a.URL == "" || a.Source == "" {
			continue
		}
		summary := a.Description
		if summary == "" {
			summary = a.Title
		}
		items = append(items, domain.NewsItem{
			Headline:       a.Title,
			Source:         a.Source,
			Summary:        summary,
			URL:            a.URL,
			SentimentLabel: domain.LabelNeutral,
		})
	}
	return items
}
