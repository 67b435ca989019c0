package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"vibe-ticker/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	newsAPIBaseURL     = "https://newsapi.org"
	newsAPIVendor      = "newsapi"
	newsAPIPlaceholder = "your_newsapi_key_here"
)

// NewsArticle is a headline as returned by a news source, before scoring.
type NewsArticle struct {
	Title       string
	Description string
	URL         string
	Source      string
	PublishedAt time.Time
}

type NewsAPIProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
}

func NewNewsAPIProvider(tracer trace.Tracer, apiKey string, timeout time.Duration) *NewsAPIProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &NewsAPIProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: newsAPIBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		tracer:  tracer,
	}
}

// Configured reports whether a real key is present. The sample .env
// placeholder counts as missing.
func (p *NewsAPIProvider) Configured() bool {
	return p != nil && p.apiKey != "" && p.apiKey != newsAPIPlaceholder
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// FetchArticles returns the newest English articles matching query. Articles
// without a title, url or source name are dropped.
func (p *NewsAPIProvider) FetchArticles(ctx context.Context, query string, pageSize int) ([]NewsArticle, error) {
	ctx, span := p.tracer.Start(ctx, "newsapi.fetch-articles")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	if !p.Configured() {
		return nil, &domain.ConfigError{Key: "NEWSAPI_KEY", Message: "NewsAPI key is not configured."}
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	q := url.Values{
		"q":        {query},
		"sortBy":   {"publishedAt"},
		"language": {"en"},
		"pageSize": {strconv.Itoa(pageSize)},
	}
	endpoint := strings.TrimRight(p.baseURL, "/") + "/v2/everything?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, &domain.VendorError{Vendor: newsAPIVendor, Kind: domain.VendorUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		vendorErr := &domain.VendorError{
			Vendor: newsAPIVendor,
			Kind:   newsAPIStatusKind(resp.StatusCode),
			Err:    fmt.Errorf("newsapi error %d: %s", resp.StatusCode, string(body)),
		}
		span.RecordError(vendorErr)
		return nil, vendorErr
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &domain.VendorError{Vendor: newsAPIVendor, Kind: domain.VendorUnavailable, Err: fmt.Errorf("decode newsapi payload: %w", err)}
	}
	if payload.Status != "ok" {
		return nil, &domain.VendorError{
			Vendor: newsAPIVendor,
			Kind:   domain.VendorRejected,
			Err:    fmt.Errorf("newsapi status %q: %s %s", payload.Status, payload.Code, payload.Message),
		}
	}

	out := make([]NewsArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		title := sanitizeText(a.Title, 0)
		link := strings.TrimSpace(a.URL)
		source := sanitizeText(a.Source.Name, 0)
		if title == "" || link == "" || source == "" {
			continue
		}
		out = append(out, NewsArticle{
			Title:       title,
			Description: sanitizeText(a.Description, 0),
			URL:         link,
			Source:      source,
			PublishedAt: parseRSSDate(a.PublishedAt),
		})
	}
	span.SetAttributes(attribute.Int("articles", len(out)))
	return out, nil
}

func newsAPIStatusKind(status int) domain.VendorErrorKind {
	switch status {
	case http.StatusTooManyRequests:
		return domain.VendorRateLimited
	case http.StatusUnauthorized:
		return domain.VendorCredential
	default:
		return domain.VendorUnavailable
	}
}

// sanitizeText collapses whitespace and, when maxLen > 0, cuts to at most
// maxLen bytes on a rune boundary.
func sanitizeText(in string, maxLen int) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	in = strings.Join(strings.Fields(in), " ")
	if maxLen <= 0 || len(in) <= maxLen {
		return in
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(in[cut]) {
		cut--
	}
	return in[:cut]
}
