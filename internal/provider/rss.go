package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RSSProvider reads headline feeds. feedTemplate may contain {symbol}, which
// is replaced with the query-escaped symbol.
type RSSProvider struct {
	client       *http.Client
	tracer       trace.Tracer
	feedTemplate string
}

func NewRSSProvider(tracer trace.Tracer, feedTemplate string, timeout time.Duration) *RSSProvider {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &RSSProvider{
		client:       &http.Client{Timeout: timeout},
		tracer:       tracer,
		feedTemplate: strings.TrimSpace(feedTemplate),
	}
}

func (p *RSSProvider) Configured() bool {
	return p != nil && p.feedTemplate != ""
}

// FetchSymbolFeed fetches the feed for one symbol.
func (p *RSSProvider) FetchSymbolFeed(ctx context.Context, symbol string, maxItems int) ([]NewsArticle, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("rss feed template is not configured")
	}
	feedURL := strings.ReplaceAll(p.feedTemplate, "{symbol}", url.QueryEscape(symbol))
	return p.FetchFeed(ctx, feedURL, maxItems)
}

func (p *RSSProvider) FetchFeed(ctx context.Context, feedURL string, maxItems int) ([]NewsArticle, error) {
	ctx, span := p.tracer.Start(ctx, "rss.fetch-feed")
	defer span.End()

	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, fmt.Errorf("feed url is required")
	}
	if maxItems <= 0 {
		maxItems = 40
	}
	span.SetAttributes(attribute.String("feed_url", feedURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := p.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rss fetch error %d: %s", resp.StatusCode, string(body))
	}

	var rss struct {
		Channel struct {
			Title string `xml:"title"`
			Items []struct {
				Title       string `xml:"title"`
				Link        string `xml:"link"`
				Description string `xml:"description"`
				PubDate     string `xml:"pubDate"`
				Source      string `xml:"source"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, fmt.Errorf("decode rss payload: %w", err)
	}

	channel := sanitizeText(rss.Channel.Title, 120)
	items := make([]NewsArticle, 0, min(maxItems, len(rss.Channel.Items)))
	for _, row := range rss.Channel.Items {
		if len(items) >= maxItems {
			break
		}
		title := sanitizeText(row.Title, 300)
		link := sanitizeText(row.Link, 0)
		if title == "" || link == "" {
			continue
		}
		source := sanitizeText(row.Source, 120)
		if source == "" {
			source = channel
		}
		if source == "" {
			source = "RSS"
		}
		items = append(items, NewsArticle{
			Title:       title,
			Description: sanitizeText(htmlStrip(row.Description), 420),
			URL:         link,
			Source:      source,
			PublishedAt: parseRSSDate(row.PubDate),
		})
	}

	return items, nil
}

func parseRSSDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822, time.RFC3339}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func htmlStrip(in string) string {
	if strings.TrimSpace(in) == "" {
		return ""
	}
	var b strings.Builder
	inside := false
	for _, r := range in {
		switch r {
		case '<':
			inside = true
			continue
		case '>':
			inside = false
			continue
		}
		if !inside {
			b.WriteRune(r)
		}
	}
	return b.String()
}
